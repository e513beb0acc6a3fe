// Package policy decides whether a reservation request may be accepted.
//
// Every rule is checked independently so a rejected request reports all of
// its violated fields in one response.
package policy

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"resto/config"
	"resto/internal/domains/reservation/model/dto"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/timezone"
	"resto/shared/validator"
)

const (
	DefaultMaxGuests     = 10
	DefaultHorizonMonths = 3

	minNameLength  = 2
	maxNameLength  = 100
	minPhoneLength = 10
	maxPhoneLength = 20
	maxEmailLength = 255

	// MaxRequestsLength bounds special requests on create and patch.
	MaxRequestsLength = 500

	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldGuests   = "guests"
	FieldRequests = "requests"
	FieldTerms    = "terms"
)

// DefaultSlots are the published reservation start times.
var DefaultSlots = []string{"12:00", "13:00", "14:00", "18:00", "19:00", "20:00", "21:00"}

var slotLayouts = []string{constant.SlotFormat24h, constant.SlotFormat12h, "3:04PM"}

type Policy struct {
	MaxGuests     int
	HorizonMonths int
	Slots         []string
}

// New reads the policy from config, falling back to the published defaults.
func New(cfg *config.Config) Policy {
	p := Policy{
		MaxGuests:     cfg.App.Reservation.MaxGuests,
		HorizonMonths: cfg.App.Reservation.HorizonMonths,
		Slots:         cfg.App.Reservation.Slots,
	}

	if p.MaxGuests <= 0 {
		p.MaxGuests = DefaultMaxGuests
	}

	if p.HorizonMonths <= 0 {
		p.HorizonMonths = DefaultHorizonMonths
	}

	if len(p.Slots) == 0 {
		p.Slots = DefaultSlots
	}

	return p
}

// Validate checks req against the policy as of now.
func (p Policy) Validate(req dto.CreateReservationRequest, now time.Time) (dto.Accepted, error) {
	var fields []failure.FieldError

	reject := func(field, msg string) {
		fields = append(fields, failure.FieldError{Field: field, Message: msg})
	}

	accepted := dto.Accepted{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Guests:   req.Guests,
		Requests: strings.TrimSpace(req.Requests),
	}

	if msg := checkLength(FieldName, accepted.Name, minNameLength, maxNameLength); msg != constant.Empty {
		reject(FieldName, msg)
	}

	if err := validator.ValidateVar(accepted.Email, fmt.Sprintf("required,email,max=%d", maxEmailLength)); err != nil {
		reject(FieldEmail, "email must be a valid email address")
	}

	if msg := checkLength(FieldPhone, accepted.Phone, minPhoneLength, maxPhoneLength); msg != constant.Empty {
		reject(FieldPhone, msg)
	}

	date, msg := p.checkDate(strings.TrimSpace(req.Date), now)
	if msg != constant.Empty {
		reject(FieldDate, msg)
	}

	accepted.Date = date

	slot, msg := p.checkSlot(req.Time)
	if msg != constant.Empty {
		reject(FieldTime, msg)
	}

	accepted.Time = slot

	if msg := p.CheckGuests(req.Guests); msg != constant.Empty {
		reject(FieldGuests, msg)
	}

	if utf8.RuneCountInString(accepted.Requests) > MaxRequestsLength {
		reject(FieldRequests, fmt.Sprintf("requests must be at most %d characters", MaxRequestsLength))
	}

	if !req.Terms {
		reject(FieldTerms, "terms must be accepted")
	}

	if err := failure.Validation("invalid reservation data", fields); err != nil {
		return dto.Accepted{}, err
	}

	return accepted, nil
}

func (p Policy) checkDate(value string, now time.Time) (time.Time, string) {
	if value == constant.Empty {
		return time.Time{}, "date is required"
	}

	date, err := timezone.Parse(constant.DateOnly, value)
	if err != nil {
		return time.Time{}, "date must be formatted as YYYY-MM-DD"
	}

	today := timezone.StartOfDay(now)
	if date.Before(today) {
		return time.Time{}, "date cannot be in the past"
	}

	if date.After(timezone.AddMonths(today, p.HorizonMonths)) {
		return time.Time{}, fmt.Sprintf("date cannot be more than %d months ahead", p.HorizonMonths)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), constant.Empty
}

func (p Policy) checkSlot(value string) (string, string) {
	slot, ok := NormalizeSlot(value)
	if !ok || !slices.Contains(p.Slots, slot) {
		return constant.Empty, "time must be one of " + strings.Join(p.Slots, ", ")
	}

	return slot, constant.Empty
}

// CheckGuests returns a violation message, or empty when guests is in range.
func (p Policy) CheckGuests(guests int) string {
	if guests < 1 {
		return "guests must be at least 1"
	}

	if guests > p.MaxGuests {
		return fmt.Sprintf("guests must be at most %d", p.MaxGuests)
	}

	return constant.Empty
}

// checkLength bounds value to the width of its column.
func checkLength(field, value string, minLen, maxLen int) string {
	n := utf8.RuneCountInString(value)

	switch {
	case n < minLen:
		return fmt.Sprintf("%s must be at least %d characters", field, minLen)
	case n > maxLen:
		return fmt.Sprintf("%s must be at most %d characters", field, maxLen)
	}

	return constant.Empty
}

// NormalizeSlot accepts "19:00" or "7:00 PM" and returns the 24h form.
func NormalizeSlot(value string) (string, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))

	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(constant.SlotFormat24h), true
		}
	}

	return constant.Empty, false
}
