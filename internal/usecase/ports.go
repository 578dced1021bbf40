package usecase

import "context"

// Pusher delivers a notification payload to a batch of device tokens.
// Per-token failures are the transport's problem and do not abort the
// batch.
type Pusher interface {
	SendToDevices(ctx context.Context, tokens []string, title, body string) error
}

// Authority is the managed auth provider: account deletion and role
// claims. Both operations are idempotent at the account level.
type Authority interface {
	DeleteAccount(ctx context.Context, uid string) error
	SetRoleClaim(ctx context.Context, uid, role string) error
}

// Caller identifies an authenticated client by its verified token
// claims. A zero Caller is an unauthenticated request.
type Caller struct {
	UID  string
	Role string
}
