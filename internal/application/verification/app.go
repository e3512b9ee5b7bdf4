package verification

import (
	"gitlab.com/nestar/idverify-backend/internal/application/verification/cmd"
)

type App struct {
	CMD Command
}

type Command struct {
	EntrySaved            *cmd.EntrySavedHandler
	Complete              *cmd.CompleteHandler
	SubmitStudentDocument *cmd.SubmitStudentDocumentHandler
}

type Args struct {
	AccountRepo   cmd.AccountRepo
	Gateway       cmd.SessionGateway
	DocumentStore cmd.DocumentStore
	ReturnURL     string
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			EntrySaved: cmd.NewEntrySavedHandler(cmd.EntrySavedHandlerArgs{
				AccountRepo: args.AccountRepo,
				Gateway:     args.Gateway,
				ReturnURL:   args.ReturnURL,
			}),
			Complete: cmd.NewCompleteHandler(cmd.CompleteHandlerArgs{
				AccountRepo: args.AccountRepo,
				Gateway:     args.Gateway,
			}),
			SubmitStudentDocument: cmd.NewSubmitStudentDocumentHandler(cmd.SubmitStudentDocumentHandlerArgs{
				AccountRepo: args.AccountRepo,
				Store:       args.DocumentStore,
			}),
		},
	}
}
