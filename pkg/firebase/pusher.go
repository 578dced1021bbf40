package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Pusher sends device notifications through FCM. Per-token failures are
// reported in the batch response and do not abort the batch.
type Pusher struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewPusher(client *messaging.Client, log *zap.Logger) *Pusher {
	return &Pusher{
		client: client,
		log:    log,
	}
}

func (p *Pusher) SendToDevices(ctx context.Context, tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	resp, err := p.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("send multicast: %w", err)
	}

	if resp.FailureCount > 0 {
		p.log.Warn("Some device tokens failed",
			zap.Int("success", resp.SuccessCount),
			zap.Int("failure", resp.FailureCount),
		)
	}

	return nil
}
