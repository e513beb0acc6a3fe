package identity_test

import (
	"context"
	"errors"
	"resto/config"
	"resto/infras/identity"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing prefix", header: "abc.def.ghi", wantErr: true},
		{name: "empty token", header: "Bearer   ", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := identity.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, identity.ErrInvalidHeader)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWT_IssueAndVerify(t *testing.T) {
	verifier := identity.NewJWT("secret", "resto")
	who := identity.Identity{Subject: "uid-1", Email: "asha@example.com", Name: "Asha"}

	token, err := verifier.Issue(who, time.Now(), time.Hour)
	require.NoError(t, err)

	got, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, who, got)
}

func TestJWT_VerifyFailures(t *testing.T) {
	verifier := identity.NewJWT("secret", "resto")
	who := identity.Identity{Subject: "uid-1", Email: "asha@example.com"}

	expired, err := verifier.Issue(who, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), expired)
	assert.ErrorIs(t, err, identity.ErrExpiredToken)

	foreign, err := identity.NewJWT("other-secret", "resto").Issue(who, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), foreign)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	otherIssuer, err := identity.NewJWT("secret", "someone-else").Issue(who, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), otherIssuer)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	anonymous, err := verifier.Issue(identity.Identity{Email: "x@example.com"}, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), anonymous)
	assert.ErrorIs(t, err, identity.ErrInvalidClaim)

	_, err = verifier.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

type fakeIDTokenVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeIDTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	verifier := identity.NewFirebase(fakeIDTokenVerifier{token: &auth.Token{
		UID:    "firebase-uid",
		Claims: map[string]any{"email": "asha@example.com", "name": "Asha"},
	}})

	got, err := verifier.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{Subject: "firebase-uid", Email: "asha@example.com", Name: "Asha"}, got)

	_, err = identity.NewFirebase(fakeIDTokenVerifier{err: errors.New("bad signature")}).Verify(context.Background(), "token")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	_, err = identity.NewFirebase(fakeIDTokenVerifier{token: &auth.Token{}}).Verify(context.Background(), "token")
	assert.ErrorIs(t, err, identity.ErrInvalidClaim)
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Identity.Provider = identity.ProviderJWT
	cfg.Identity.JWT.Secret = "secret"

	verifier := identity.New(cfg, nil)
	assert.IsType(t, &identity.JWT{}, verifier)
}

func TestContext(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	ctx := identity.WithIdentity(context.Background(), identity.Identity{Subject: "uid"})
	got, ok := identity.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "uid", got.Subject)

	_, ok = identity.FromContext(identity.WithIdentity(context.Background(), identity.Identity{}))
	assert.False(t, ok)
}
