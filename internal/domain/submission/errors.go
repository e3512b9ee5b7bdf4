package submission

import "gitlab.com/nestar/idverify-backend/pkg/errorx"

var ErrMissingEmail = errorx.NewValidationFailed()
