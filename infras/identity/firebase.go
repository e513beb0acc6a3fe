package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebase(client idTokenVerifier) Verifier {
	return &firebaseVerifier{client: client}
}

func (f *firebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	decoded, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return Identity{}, ErrExpiredToken
		}

		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if decoded.UID == "" {
		return Identity{}, ErrInvalidClaim
	}

	email, _ := decoded.Claims["email"].(string)
	name, _ := decoded.Claims["name"].(string)

	return Identity{
		Subject: decoded.UID,
		Email:   email,
		Name:    name,
	}, nil
}
