package model

import "resto/shared/model"

const (
	TableName  = "contact_messages"
	EntityName = "contact message"

	FieldID = "id"
)

type ContactMessage struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
	model.Metadata
}
