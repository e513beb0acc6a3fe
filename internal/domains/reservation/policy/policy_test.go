package policy_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/config"
	"resto/internal/domains/reservation/model/dto"
	"resto/internal/domains/reservation/policy"
	"resto/shared/failure"
)

var now = time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

func validRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Phone:  "9876543210",
		Date:   "2025-06-15",
		Time:   "7:00 PM",
		Guests: 4,
		Terms:  true,
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	var names []string
	for _, f := range failure.GetFields(err) {
		names = append(names, f.Field)
	}

	return names
}

func TestNew_Defaults(t *testing.T) {
	p := policy.New(&config.Config{})

	assert.Equal(t, policy.DefaultMaxGuests, p.MaxGuests)
	assert.Equal(t, policy.DefaultHorizonMonths, p.HorizonMonths)
	assert.Equal(t, policy.DefaultSlots, p.Slots)

	cfg := &config.Config{}
	cfg.App.Reservation.MaxGuests = 6
	cfg.App.Reservation.Slots = []string{"18:00"}

	p = policy.New(cfg)
	assert.Equal(t, 6, p.MaxGuests)
	assert.Equal(t, []string{"18:00"}, p.Slots)
}

func TestValidate_Accepted(t *testing.T) {
	p := policy.New(&config.Config{})

	accepted, err := p.Validate(validRequest(), now)
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", accepted.Name)
	assert.Equal(t, "19:00", accepted.Time)
	assert.Equal(t, 4, accepted.Guests)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), accepted.Date)
}

func TestValidate_Rules(t *testing.T) {
	p := policy.New(&config.Config{})

	tests := []struct {
		name      string
		mutate    func(r *dto.CreateReservationRequest)
		wantField string
	}{
		{name: "today is bookable", mutate: func(r *dto.CreateReservationRequest) { r.Date = "2025-06-10" }},
		{name: "yesterday", mutate: func(r *dto.CreateReservationRequest) { r.Date = "2025-06-09" }, wantField: policy.FieldDate},
		{name: "last day of horizon", mutate: func(r *dto.CreateReservationRequest) { r.Date = "2025-09-10" }},
		{name: "beyond horizon", mutate: func(r *dto.CreateReservationRequest) { r.Date = "2025-09-11" }, wantField: policy.FieldDate},
		{name: "missing date", mutate: func(r *dto.CreateReservationRequest) { r.Date = "" }, wantField: policy.FieldDate},
		{name: "malformed date", mutate: func(r *dto.CreateReservationRequest) { r.Date = "15/06/2025" }, wantField: policy.FieldDate},
		{name: "24h slot", mutate: func(r *dto.CreateReservationRequest) { r.Time = "12:00" }},
		{name: "lowercase 12h slot", mutate: func(r *dto.CreateReservationRequest) { r.Time = "9:00 pm" }},
		{name: "unpublished slot", mutate: func(r *dto.CreateReservationRequest) { r.Time = "19:30" }, wantField: policy.FieldTime},
		{name: "afternoon gap", mutate: func(r *dto.CreateReservationRequest) { r.Time = "3:00 PM" }, wantField: policy.FieldTime},
		{name: "garbage slot", mutate: func(r *dto.CreateReservationRequest) { r.Time = "dinner" }, wantField: policy.FieldTime},
		{name: "zero guests", mutate: func(r *dto.CreateReservationRequest) { r.Guests = 0 }, wantField: policy.FieldGuests},
		{name: "negative guests", mutate: func(r *dto.CreateReservationRequest) { r.Guests = -2 }, wantField: policy.FieldGuests},
		{name: "max guests", mutate: func(r *dto.CreateReservationRequest) { r.Guests = 10 }},
		{name: "too many guests", mutate: func(r *dto.CreateReservationRequest) { r.Guests = 11 }, wantField: policy.FieldGuests},
		{name: "short name", mutate: func(r *dto.CreateReservationRequest) { r.Name = " A " }, wantField: policy.FieldName},
		{name: "bad email", mutate: func(r *dto.CreateReservationRequest) { r.Email = "asha.example.com" }, wantField: policy.FieldEmail},
		{name: "short phone", mutate: func(r *dto.CreateReservationRequest) { r.Phone = "98765" }, wantField: policy.FieldPhone},
		{name: "name at column width", mutate: func(r *dto.CreateReservationRequest) { r.Name = strings.Repeat("A", 100) }},
		{name: "name wider than column", mutate: func(r *dto.CreateReservationRequest) { r.Name = strings.Repeat("A", 150) }, wantField: policy.FieldName},
		{name: "phone at column width", mutate: func(r *dto.CreateReservationRequest) { r.Phone = "+91 98765 43210 x12" }},
		{name: "phone with extension", mutate: func(r *dto.CreateReservationRequest) { r.Phone = "+91 98765 43210 ext. 1234" }, wantField: policy.FieldPhone},
		{name: "overlong email", mutate: func(r *dto.CreateReservationRequest) { r.Email = strings.Repeat("a", 250) + "@example.com" }, wantField: policy.FieldEmail},
		{name: "requests at limit", mutate: func(r *dto.CreateReservationRequest) { r.Requests = strings.Repeat("r", 500) }},
		{name: "requests over limit", mutate: func(r *dto.CreateReservationRequest) { r.Requests = strings.Repeat("r", 501) }, wantField: policy.FieldRequests},
		{name: "terms not accepted", mutate: func(r *dto.CreateReservationRequest) { r.Terms = false }, wantField: policy.FieldTerms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := p.Validate(req, now)
			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, []string{tt.wantField}, fieldNames(t, err))
		})
	}
}

func TestValidate_AccumulatesEveryViolation(t *testing.T) {
	p := policy.New(&config.Config{})

	_, err := p.Validate(dto.CreateReservationRequest{Date: "2025-06-01", Time: "16:00"}, now)

	assert.Equal(t, []string{
		policy.FieldName,
		policy.FieldEmail,
		policy.FieldPhone,
		policy.FieldDate,
		policy.FieldTime,
		policy.FieldGuests,
		policy.FieldTerms,
	}, fieldNames(t, err))
}

func TestValidate_HorizonClampsToMonthEnd(t *testing.T) {
	p := policy.New(&config.Config{})
	endOfNovember := time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)

	req := validRequest()
	req.Date = "2026-02-28"

	_, err := p.Validate(req, endOfNovember)
	assert.NoError(t, err)

	req.Date = "2026-03-01"

	_, err = p.Validate(req, endOfNovember)
	assert.Equal(t, []string{policy.FieldDate}, fieldNames(t, err))
}

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"19:00", "19:00", true},
		{"7:00 PM", "19:00", true},
		{"7:00PM", "19:00", true},
		{"12:00 pm", "12:00", true},
		{" 13:00 ", "13:00", true},
		{"25:00", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := policy.NormalizeSlot(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
