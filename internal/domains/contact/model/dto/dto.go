package dto

import (
	"resto/infras/mailer"
	"resto/internal/domains/contact/model"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

func (r *CreateContactRequest) ToModel() model.ContactMessage {
	return model.ContactMessage{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Message:  r.Message,
		Metadata: gModel.NewMetadata(timezone.Now(), constant.ContextGuest),
	}
}

func (r *CreateContactRequest) ToContact() mailer.Contact {
	return mailer.Contact{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

type ContactResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.ContactMessage) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Message = model.Message
	r.Metadata.FromModel(model.Metadata)
}
