package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resto/config"
	"resto/infras/mailer"
	"resto/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.External.Mailer.Driver = mailer.DriverWeb3Forms
	cfg.External.Mailer.Subject = "New Reservation Confirmed"
	cfg.External.Mailer.FromName = "Reservation System"
	cfg.External.Mailer.Web3Forms.URL = url
	cfg.External.Mailer.Web3Forms.AccessKey = "access-key"

	return cfg
}

func TestWeb3Forms_SendReservationConfirmation(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	defer server.Close()

	dispatcher := mailer.NewWeb3Forms(newConfig(server.URL), mocks.NewOtel(), server.Client())

	err := dispatcher.SendReservationConfirmation(context.Background(), mailer.Confirmation{
		ReservationID: "r-1",
		Name:          "Asha",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Date:          "2025-06-01",
		Time:          "19:00",
		Guests:        1,
	})
	require.NoError(t, err)

	assert.Equal(t, "access-key", received["access_key"])
	assert.Equal(t, "New Reservation Confirmed", received["subject"])
	assert.Equal(t, "Reservation System", received["from_name"])
	assert.Equal(t, "Asha", received["to_name"])
	assert.Equal(t, "asha@example.com", received["email"])
	assert.Contains(t, received["message"], "Number of Guests: 1 Person")
	assert.Contains(t, received["message"], "Special Requests: None")
}

func TestWeb3Forms_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "provider says no", status: http.StatusOK, body: `{"success":false,"message":"Invalid access key"}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{"success":true}`},
		{name: "not json", status: http.StatusOK, body: `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			dispatcher := mailer.NewWeb3Forms(newConfig(server.URL), mocks.NewOtel(), server.Client())

			err := dispatcher.SendContactMessage(context.Background(), mailer.Contact{Name: "Asha", Email: "asha@example.com", Message: "hi"})
			assert.ErrorIs(t, err, mailer.ErrRejected)
		})
	}
}

func TestWeb3Forms_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	dispatcher := mailer.NewWeb3Forms(newConfig(url), mocks.NewOtel(), nil)

	err := dispatcher.SendReservationConfirmation(context.Background(), mailer.Confirmation{Name: "Asha"})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	cfg := newConfig("http://localhost")

	cfg.External.Mailer.Driver = "noop"
	noop := mailer.New(cfg, mocks.NewOtel())
	assert.NoError(t, noop.SendReservationConfirmation(context.Background(), mailer.Confirmation{}))
	assert.NoError(t, noop.SendContactMessage(context.Background(), mailer.Contact{}))

	cfg.External.Mailer.Driver = "WEB3FORMS"
	assert.NotNil(t, mailer.New(cfg, mocks.NewOtel()))

	cfg.External.Mailer.Driver = mailer.DriverSMTP
	assert.NotNil(t, mailer.New(cfg, mocks.NewOtel()))
}
