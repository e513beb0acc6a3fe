package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resto/config"
	"resto/infras/otel"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DriverWeb3Forms = "web3forms"
	DriverSMTP      = "smtp"
	DriverNoop      = "noop"
)

var ErrRejected = errors.New("notification rejected by provider")

// Confirmation describes a confirmed reservation to notify the guest about.
type Confirmation struct {
	ReservationID string
	Name          string
	Email         string
	Phone         string
	Date          string
	Time          string
	Guests        int
	Requests      string
}

// Contact is a message left through the contact form.
type Contact struct {
	Name    string
	Email   string
	Message string
}

type Dispatcher interface {
	SendReservationConfirmation(ctx context.Context, confirmation Confirmation) error
	SendContactMessage(ctx context.Context, contact Contact) error
}

// New returns the dispatcher selected by EXTERNAL_MAILER_DRIVER.
func New(cfg *config.Config, otl otel.Otel) Dispatcher {
	switch strings.ToLower(cfg.External.Mailer.Driver) {
	case DriverWeb3Forms:
		return NewWeb3Forms(cfg, otl, nil)
	case DriverSMTP:
		return NewSMTP(cfg, otl)
	default:
		log.Warn().Str("driver", cfg.External.Mailer.Driver).Msg("Notifications disabled, using noop mailer")

		return noop{}
	}
}

func (c Confirmation) body() string {
	requests := c.Requests
	if requests == "" {
		requests = "None"
	}

	people := "People"
	if c.Guests == 1 {
		people = "Person"
	}

	return fmt.Sprintf(
		"Reservation confirmed\n\nGuest Name: %s\nEmail: %s\nPhone: %s\nDate: %s\nTime: %s\nNumber of Guests: %d %s\nSpecial Requests: %s\nReference: %s\n",
		c.Name, c.Email, c.Phone, c.Date, c.Time, c.Guests, people, requests, c.ReservationID,
	)
}

type noop struct{}

func (noop) SendReservationConfirmation(_ context.Context, confirmation Confirmation) error {
	log.Debug().Str("reservation_id", confirmation.ReservationID).Msg("noop mailer: reservation confirmation skipped")

	return nil
}

func (noop) SendContactMessage(_ context.Context, contact Contact) error {
	log.Debug().Str("email", contact.Email).Msg("noop mailer: contact message skipped")

	return nil
}
