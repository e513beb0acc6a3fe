package model

import "resto/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldUsername    = "username"
	FieldFirebaseUID = "firebase_uid"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldPassword    = "password"

	ConstraintFirebaseUID = "users_firebase_uid_key"
	ConstraintUsername    = "users_username_key"
)

type User struct {
	ID          string  `db:"id"`
	Username    string  `db:"username"`
	FirebaseUID *string `db:"firebase_uid"`
	Email       string  `db:"email"`
	Name        string  `db:"name"`
	Phone       *string `db:"phone"`
	Password    string  `db:"password"`
	model.Metadata
}
