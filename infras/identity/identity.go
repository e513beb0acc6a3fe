package identity

//go:generate go run go.uber.org/mock/mockgen -source=./identity.go -destination=./mocks/identity_mock.go -package=mocks

import (
	"context"
	"errors"
	"resto/config"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
)

const (
	ProviderFirebase = "firebase"
	ProviderJWT      = "jwt"

	bearerPrefix = "Bearer "
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrInvalidHeader = errors.New("invalid authorization header format")
)

// Identity is the verified caller as reported by the identity provider.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

func (i Identity) IsZero() bool {
	return i.Subject == ""
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// New picks the verifier configured by IDENTITY_PROVIDER.
func New(cfg *config.Config, firebaseAuth *auth.Client) Verifier {
	switch cfg.Identity.Provider {
	case ProviderJWT:
		log.Info().Msg("Using JWT identity verifier")

		return NewJWT(cfg.Identity.JWT.Secret, cfg.Identity.JWT.Issuer)
	default:
		log.Info().Msg("Using Firebase identity verifier")

		return NewFirebase(firebaseAuth)
	}
}

func ExtractTokenFromHeader(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrInvalidHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", ErrInvalidHeader
	}

	return token, nil
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by the auth middleware, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)

	return id, ok && !id.IsZero()
}
