package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
)

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type pushService struct {
	sender messageSender
}

// NewPushService connects to Firebase Cloud Messaging. It returns nil, nil when
// push is disabled.
func NewPushService(ctx context.Context, cfg config.PushConfig) (PushService, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}
	return &pushService{sender: client}, nil
}

// ActorTopic is the FCM topic a signed-in device subscribes to.
func ActorTopic(actorID int64) string {
	return fmt.Sprintf("actor-%d", actorID)
}

func (s *pushService) Send(ctx context.Context, n domain.Notification) error {
	msg := &messaging.Message{
		Topic: ActorTopic(n.ActorID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: n.Attributes,
	}

	logger.ExternalServiceCall("fcm", "Send", "topic", msg.Topic)
	id, err := s.sender.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err, "topic", msg.Topic, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
