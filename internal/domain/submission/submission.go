package submission

import (
	"strings"

	"github.com/ARUMANDESU/validation"

	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/sanitizex"
	"gitlab.com/nestar/idverify-backend/pkg/validationx"
)

// Method is the identity check the applicant chose on the form.
type Method string

func (m Method) String() string {
	return string(m)
}

const (
	MethodNone      Method = "none"
	MethodDocument  Method = "document"
	MethodStudentID Method = "student_id"
)

// ParseMethod maps the raw form choice to a Method. Unknown or empty values
// fall back to MethodNone: a submission without a recognised method still
// parks the account, it just starts no verification.
func ParseMethod(raw string) Method {
	switch strings.ToLower(sanitizex.CleanSingleLine(raw)) {
	case "document", "id document", "government id":
		return MethodDocument
	case "student_id", "student id":
		return MethodStudentID
	default:
		return MethodNone
	}
}

// Submission is a validated registration form entry.
type Submission struct {
	email  string
	role   string
	method Method
}

func New(email, role, method string) (*Submission, error) {
	const op = "submission.New"

	email = sanitizex.CleanSingleLine(email)
	role = sanitizex.CleanSingleLine(role)

	if email == "" {
		return nil, errorx.Wrap(ErrMissingEmail, op)
	}
	if err := validation.Validate(&email, validationx.EmailRules...); err != nil {
		return nil, errorx.Wrap(err, op)
	}
	if err := validation.Validate(&role, validationx.RoleRules...); err != nil {
		return nil, errorx.Wrap(err, op)
	}

	return &Submission{
		email:  email,
		role:   role,
		method: ParseMethod(method),
	}, nil
}

func (s *Submission) Email() string {
	if s == nil {
		return ""
	}

	return s.email
}

func (s *Submission) Role() string {
	if s == nil {
		return ""
	}

	return s.role
}

func (s *Submission) Method() Method {
	if s == nil {
		return MethodNone
	}

	return s.method
}
