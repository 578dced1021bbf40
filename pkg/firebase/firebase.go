package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/sameer-776/seminar-app/pkg/utils"
)

// Clients bundles the managed auth and push collaborators. Initialized
// once at startup and injected into the adapters.
type Clients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
}

func InitClients(ctx context.Context, config utils.FirebaseConfig) (*Clients, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	return &Clients{
		Auth:      authClient,
		Messaging: messagingClient,
	}, nil
}
