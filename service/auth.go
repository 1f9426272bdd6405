package service

import (
	"context"
	"errors"
	"time"

	"github.com/akeshari98/wall-robot-control-system/identity"
	"github.com/akeshari98/wall-robot-control-system/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

// Auth manages operator registration and sign in.
type Auth struct {
	operatorRepo i.OperatorRepo
	tokenizer    i.Tokenizer
}

// NewAuthService creates an Auth service with the given repo and tokenizer.
func NewAuthService(operatorRepo i.OperatorRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if operatorRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service requires operator repo and tokenizer")
	}
	return &Auth{
		operatorRepo: operatorRepo,
		tokenizer:    tokenizer,
	}, nil
}

// Register creates a new operator account.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	operator, err := identity.NewOperator(identity.OperatorConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	return a.operatorRepo.Save(ctx, operator)
}

// SignIn verifies credentials and returns the operator with a fresh
// access token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*identity.Operator, string, error) {
	operator, err := a.operatorRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !operator.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"operatorID": operator.ID,
		"username":   operator.Username,
	}, tokenLifetime)

	return operator, token, err
}
