package i

import (
	"context"

	"github.com/akeshari98/wall-robot-control-system/identity"
)

// Authenticator manages operator accounts and issues access tokens.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*identity.Operator, string, error)
}
