package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/config"
	"github.com/oksasatya/campus-social/pkg/helpers"
	"github.com/oksasatya/campus-social/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-social/pkg/mailer/templates"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string, tags ...string) error
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("rabbitmq: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	resolver := mailtpl.NewIPAPIResolver("")
	defer func() { _ = resolver.Close() }()
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			ack, requeue := handle(ctx, cfg, mg, resolver, logger, msg.Body)
			if ack {
				_ = msg.Ack(false)
			} else {
				_ = msg.Nack(false, requeue)
			}
		}
		close(done)
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle renders and sends one job. It reports whether to ack the message and,
// when not, whether the failure is worth a retry.
func handle(ctx context.Context, cfg *config.Config, s sender, resolver mailtpl.GeoResolver, logger *logrus.Logger, body []byte) (ack bool, requeue bool) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		return false, false
	}
	if job.To == "" {
		logger.Warn("message without recipient")
		return false, false
	}

	helpers.EnsureRecipientAndEmail(&job)
	job.Data = mailtpl.Fill(cfg, job.Template, job.To, job.Data)
	helpers.FormatExpiry(ctx, resolver, job.Data)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !mailtpl.Known(job.Template) {
			logger.WithField("template", job.Template).Warn("unknown template")
			return false, false
		}
		sub, txt, htm, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return false, false
		}
		subject, text, html = sub, txt, htm
	}
	if subject == "" {
		subject = helpers.SubjectFor(job.Template)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.Send(c, job.To, subject, text, html, tagsFor(job)...); err != nil {
		logger.WithError(err).WithField("to", job.To).Error("send failed")
		return false, true
	}
	logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return true, false
}

func tagsFor(job mailer.EmailJob) []string {
	if job.Template == "" {
		return nil
	}
	return []string{job.Template}
}
