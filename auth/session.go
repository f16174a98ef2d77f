package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"content-coach/user"
)

// Session identifies the authenticated caller. It is built once by the HTTP
// middleware and passed explicitly into service calls, never read from
// globals.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

func (s Session) Can(action user.Action) bool {
	return user.Allowed(s.Role, action)
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok {
		return Session{}, errors.New("no session in context")
	}
	return s, nil
}

// SessionFromClaims converts verified token claims back into a Session.
func SessionFromClaims(c *Claims) (Session, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return Session{}, ErrBadToken
	}
	role, err := user.ParseRole(c.Role)
	if err != nil {
		return Session{}, ErrBadToken
	}
	return Session{UserID: id, Email: c.Email, Role: role}, nil
}
