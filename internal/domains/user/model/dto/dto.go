package dto

import (
	"resto/internal/domains/user/model"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

// EnsureUserRequest carries the verified external identity plus optional
// profile overrides from the request body.
type EnsureUserRequest struct {
	ExternalID string `json:"-"`
	Username   string `json:"username" validate:"omitempty,min=3,max=50"`
	Email      string `json:"email"    validate:"omitempty,email,max=255"`
	Name       string `json:"name"     validate:"omitempty,max=100"`
	Phone      string `json:"phone"    validate:"omitempty,min=10,max=20"`
}

func (r *EnsureUserRequest) ToModel(username, hashedPassword string) model.User {
	externalID := r.ExternalID
	now := timezone.Now()

	user := model.User{
		ID:          uuid.NewString(),
		Username:    username,
		FirebaseUID: &externalID,
		Email:       r.Email,
		Name:        r.Name,
		Password:    hashedPassword,
		Metadata:    gModel.NewMetadata(now, constant.ContextSystem),
	}

	if r.Phone != constant.Empty {
		phone := r.Phone
		user.Phone = &phone
	}

	return user
}

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FirebaseUID *string `json:"firebase_uid,omitempty"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.FirebaseUID = model.FirebaseUID
	r.Email = model.Email
	r.Name = model.Name
	r.Phone = model.Phone
	r.Metadata.FromModel(model.Metadata)
}
