// Package notify turns application notices into email jobs on the queue.
package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/port"
	"github.com/oksasatya/campus-social/pkg/mailer"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type QueueNotifier struct {
	Pub     Publisher
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewQueueNotifier(pub Publisher, logger *logrus.Logger) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Logger: logger, Timeout: 5 * time.Second}
}

// Notify publishes once in the background. The request context is not used
// for the publish so a finished request does not cancel it.
func (n *QueueNotifier) Notify(ctx context.Context, to string, notice port.Notice) {
	job := mailer.EmailJob{To: to, Subject: notice.Subject, Template: notice.Template, Data: notice.Data}
	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.Timeout)
		defer cancel()
		if err := n.Pub.PublishJSON(c, job); err != nil && n.Logger != nil {
			n.Logger.WithError(err).WithFields(logrus.Fields{"to": to, "template": notice.Template}).Error("enqueue email failed")
		}
	}()
}

// LogNotifier only logs notices. Used when MAIL_SEND_ENABLED=false.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) Notify(_ context.Context, to string, notice port.Notice) {
	if n.Logger == nil {
		return
	}
	n.Logger.WithFields(logrus.Fields{"to": to, "template": notice.Template}).Info("email sending disabled; notice dropped")
}

var (
	_ port.Notifier = (*QueueNotifier)(nil)
	_ port.Notifier = LogNotifier{}
)
