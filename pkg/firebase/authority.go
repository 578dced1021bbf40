package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Authority wraps the managed auth provider: account deletion and role
// claims.
type Authority struct {
	client *auth.Client
}

func NewAuthority(client *auth.Client) *Authority {
	return &Authority{client: client}
}

func (a *Authority) DeleteAccount(ctx context.Context, uid string) error {
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("delete auth account %s: %w", uid, err)
	}
	return nil
}

// SetRoleClaim overwrites the custom claims with the given role. Claims
// are the authorization source of truth for every caller token issued
// afterwards.
func (a *Authority) SetRoleClaim(ctx context.Context, uid, role string) error {
	claims := map[string]interface{}{"role": role}
	if err := a.client.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return fmt.Errorf("set role claim for %s: %w", uid, err)
	}
	return nil
}
