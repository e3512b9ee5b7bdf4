package notify

import (
	notifyevent "gitlab.com/nestar/idverify-backend/internal/application/notify/event"
)

type App struct {
	Event *notifyevent.NotifyEventHandler
}

type Args struct {
	Mailsender notifyevent.MailSender
}

func NewApp(args Args) *App {
	return &App{
		Event: notifyevent.NewNotifyEventHandler(notifyevent.NotifyEventHandlerArgs{
			Mailsender: args.Mailsender,
		}),
	}
}
