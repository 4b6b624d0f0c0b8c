// Package identity carries the authenticated caller through a request.
// Tokens are issued by an external identity provider; this package only
// verifies them.
package identity

import (
	"context"
	"strings"
)

const RoleAdmin = "admin"

type User struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Name is the display name snapshotted onto bookings: the provider's display
// name, else the local part of the e-mail address.
func (u *User) Name() string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the caller, or nil for anonymous requests.
func FromContext(ctx context.Context) *User {
	user, _ := ctx.Value(ctxKey{}).(*User)
	return user
}
