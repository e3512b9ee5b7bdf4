package account

import (
	"net/http"

	"gitlab.com/nestar/idverify-backend/pkg/errorx"
)

var (
	// ErrAlreadyApproved signals an idempotent re-run, not a failure. Callers
	// treat it as success.
	ErrAlreadyApproved = errorx.NewAlreadyProcessed().WithHTTPCode(http.StatusOK)

	ErrInvalidStatus          = errorx.NewBusinessRuleViolation("business_rule_violation")
	ErrVerificationIncomplete = errorx.NewBusinessRuleViolation("verification_incomplete")
)
