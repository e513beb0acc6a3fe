package dto

import (
	"resto/internal/domains/reservation/model"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	WarningDocumentStore = "reservation confirmed, but the companion record could not be saved"
	WarningNotification  = "reservation confirmed, but the confirmation email could not be sent"
	WarningDocumentSync  = "reservation updated, but the companion record could not be synced"
)

// CreateReservationRequest is validated by the reservation policy rather than
// struct tags so that every violated field is reported at once.
type CreateReservationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Guests   int    `json:"guests"`
	Requests string `json:"requests"`
	Terms    bool   `json:"terms"`
}

// Accepted is a reservation request that passed the policy. Date holds the
// calendar date at UTC midnight and Time the slot in 24h form.
type Accepted struct {
	Name     string
	Email    string
	Phone    string
	Date     time.Time
	Time     string
	Guests   int
	Requests string
}

func (a *Accepted) ToModel(userID, actor string) model.Reservation {
	reservation := model.Reservation{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Date:     a.Date,
		Time:     a.Time,
		Guests:   a.Guests,
		Status:   model.StatusConfirmed,
		OwnerUID: &actor,
		Metadata: gModel.NewMetadata(timezone.Now(), actor),
	}

	if a.Requests != constant.Empty {
		requests := a.Requests
		reservation.Requests = &requests
	}

	return reservation
}

// NewDocument builds the companion document for a stored reservation.
func NewDocument(reservation model.Reservation, externalID string) model.Document {
	doc := model.Document{
		UserID:        externalID,
		ReservationID: reservation.ID,
		Name:          reservation.Name,
		Email:         reservation.Email,
		Phone:         reservation.Phone,
		Date:          reservation.Date.Format(constant.DateOnly),
		Time:          reservation.Time,
		Guests:        reservation.Guests,
		Status:        reservation.Status,
	}

	if reservation.Requests != nil {
		doc.Requests = *reservation.Requests
	}

	return doc
}

// PatchReservationRequest lists the only fields an update may touch.
type PatchReservationRequest struct {
	Status   *string `db:"status"   json:"status"   validate:"omitempty,oneof=cancelled completed"`
	Requests *string `db:"requests" json:"requests" validate:"omitempty,max=500"`
	Guests   *int    `db:"guests"   json:"guests"   validate:"omitempty,gte=1"`
}

func (p *PatchReservationRequest) IsEmpty() bool {
	return p.Status == nil && p.Requests == nil && p.Guests == nil
}

type ReservationResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id,omitempty"`
	DocumentID string   `json:"document_id,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Guests     int      `json:"guests"`
	Requests   string   `json:"requests"`
	Status     string   `json:"status"`
	Warnings   []string `json:"warnings,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Date = model.Date.Format(constant.DateOnly)
	r.Time = model.Time
	r.Guests = model.Guests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	if model.DocumentID != nil {
		r.DocumentID = *model.DocumentID
	}

	if model.Requests != nil {
		r.Requests = *model.Requests
	}
}

func (r *ReservationResponse) FromDocument(doc model.Document) {
	r.ID = doc.ReservationID
	r.DocumentID = doc.ID
	r.Name = doc.Name
	r.Email = doc.Email
	r.Phone = doc.Phone
	r.Date = doc.Date
	r.Time = doc.Time
	r.Guests = doc.Guests
	r.Requests = doc.Requests
	r.Status = doc.Status
	r.CreatedAt = timezone.Format(doc.Timestamp, constant.DateFormat)

	if doc.UpdatedAt != nil {
		r.ModifiedAt = timezone.Format(*doc.UpdatedAt, constant.DateFormat)
	}
}

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
	EventUpdated   = "reservation.updated"
)

// Event is published after a reservation changes state.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Guests        int       `json:"guests"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, reservation model.Reservation) Event {
	return Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		Status:        reservation.Status,
		Date:          reservation.Date.Format(constant.DateOnly),
		Time:          reservation.Time,
		Guests:        reservation.Guests,
		OccurredAt:    timezone.Now(),
	}
}
