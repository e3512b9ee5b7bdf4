package validationx

import (
	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	RoleRules = []validation.Rule{
		validation.Length(0, 100),
	}

	SessionIDRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 255),
		is.PrintableASCII,
	}
)
