package verification

// SessionStatus mirrors the gateway's lifecycle states for an identity
// verification session.
type SessionStatus string

func (s SessionStatus) String() string {
	return string(s)
}

const (
	SessionStatusVerified      SessionStatus = "verified"
	SessionStatusProcessing    SessionStatus = "processing"
	SessionStatusRequiresInput SessionStatus = "requires_input"
	SessionStatusCanceled      SessionStatus = "canceled"
)

// SessionHandle is returned when a new session is created: the id to store
// and the hosted URL to send the applicant to.
type SessionHandle struct {
	ID  string
	URL string
}

// Session is the gateway's view of an existing session.
type Session struct {
	ID     string
	Status SessionStatus
	Email  string
}

// IsVerified reports whether the gateway confirmed the applicant's identity.
// Anything else, including "processing", keeps the account parked.
func (s Session) IsVerified() bool {
	return s.Status == SessionStatusVerified
}
