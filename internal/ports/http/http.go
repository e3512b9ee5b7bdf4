package http

import (
	"github.com/go-chi/chi/v5"

	verificationapp "gitlab.com/nestar/idverify-backend/internal/application/verification"
	intakehttp "gitlab.com/nestar/idverify-backend/internal/ports/http/intake"
	verificationhttp "gitlab.com/nestar/idverify-backend/internal/ports/http/verification"
	"gitlab.com/nestar/idverify-backend/pkg/httpx"
)

type Port struct {
	intake       *intakehttp.HTTP
	verification *verificationhttp.HTTP
}

type Args struct {
	VerificationApp *verificationapp.App
	Errhandler      *httpx.ErrorHandler
	FormID          int64
	SuccessURL      string
}

func NewPort(args Args) *Port {
	return &Port{
		intake: intakehttp.NewHTTP(intakehttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
			FormID:     args.FormID,
		}),
		verification: verificationhttp.NewHTTP(verificationhttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
			SuccessURL: args.SuccessURL,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	p.intake.Route(r)
	p.verification.Route(r)

	return r
}
