package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/config"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
	"github.com/oksasatya/classroom-activities/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify-worker", cfg.Env, cfg.LogLevel)

	if !cfg.NotificationsEnabled {
		logger.Info("NOTIFICATIONS_ENABLED=false; notify worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue, 16)
	if err != nil {
		logger.Fatalf("rabbitmq: %v", err)
	}
	defer consumer.Close()
	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	sender := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			switch handle(ctx, sender, msg.Body, logger) {
			case outcomeAck:
				_ = msg.Ack(false)
			case outcomeRetry:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQNotifyQueue).Info("notify worker listening")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
	cancel()
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

// handle decodes one queued job and sends it. Undecodable or unrenderable jobs
// are dropped; delivery failures are retried.
func handle(ctx context.Context, s mailer.Sender, body []byte, logger *logrus.Logger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogWarn(logger, "bad message", err, nil)
		return outcomeDrop
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	err := mailer.Dispatch(sendCtx, s, job)
	switch {
	case err == nil:
		helpers.LogInfo(logger, "notification sent", logrus.Fields{"to": job.To, "template": job.Template})
		return outcomeAck
	case errors.Is(err, mailer.ErrEmptyJob), mailer.IsRenderError(err):
		helpers.LogWarn(logger, "dropping notification", err, logrus.Fields{"template": job.Template})
		return outcomeDrop
	default:
		helpers.LogError(logger, "send failed", err, logrus.Fields{"to": job.To})
		return outcomeRetry
	}
}
