package model

import (
	"resto/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldGuests     = "guests"
	FieldRequests   = "requests"
	FieldStatus     = "status"
	FieldDocumentID = "document_id"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation is the relational store of record. OwnerUID is read through
// the users join and never written.
type Reservation struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Phone      string    `db:"phone"`
	Date       time.Time `db:"date"`
	Time       string    `db:"time"`
	Guests     int       `db:"guests"`
	Requests   *string   `db:"requests"`
	Status     string    `db:"status"`
	DocumentID *string   `db:"document_id"`
	OwnerUID   *string   `db:"owner_uid"   table:"users" column:"firebase_uid"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = reservations.user_id"
}

const (
	DocumentFieldUserID        = "userId"
	DocumentFieldReservationID = "reservationId"
	DocumentFieldStatus        = "status"
	DocumentFieldGuests        = "guests"
	DocumentFieldRequests      = "requests"
	DocumentFieldUpdatedAt     = "updatedAt"
)

// Document is the companion record kept in the document store, keyed by the
// caller's external identity rather than the internal user id.
type Document struct {
	ID            string     `firestore:"-"`
	UserID        string     `firestore:"userId"`
	ReservationID string     `firestore:"reservationId"`
	Name          string     `firestore:"name"`
	Email         string     `firestore:"email"`
	Phone         string     `firestore:"phone"`
	Date          string     `firestore:"date"`
	Time          string     `firestore:"time"`
	Guests        int        `firestore:"guests"`
	Requests      string     `firestore:"requests"`
	Status        string     `firestore:"status"`
	Timestamp     time.Time  `firestore:"timestamp,serverTimestamp"`
	UpdatedAt     *time.Time `firestore:"updatedAt,omitempty"`
}
