package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/infras/mailer"
	mailerMocks "resto/infras/mailer/mocks"
	"resto/infras/otel/mocks"
	contactMocks "resto/internal/domains/contact/mocks"
	"resto/internal/domains/contact/model"
	"resto/internal/domains/contact/model/dto"
	"resto/internal/domains/contact/service"
	"resto/shared/constant"
	"resto/shared/failure"
)

func TestContactService_Create(t *testing.T) {
	req := dto.CreateContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "Do you host private dinners on weekends?",
	}

	tests := []struct {
		name      string
		insertErr error
		notifyErr error
		wantCode  int
		notify    bool
	}{
		{name: "stored and forwarded", notify: true},
		{name: "forward failure is not fatal", notify: true, notifyErr: mailer.ErrRejected},
		{name: "store failure", insertErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := contactMocks.NewMockContact(ctrl)
			dispatcher := mailerMocks.NewMockDispatcher(ctrl)

			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, msg model.ContactMessage) error {
					assert.NotEmpty(t, msg.ID)
					assert.Equal(t, req.Message, msg.Message)
					assert.Equal(t, constant.ContextGuest, msg.CreatedBy)

					return tt.insertErr
				})

			if tt.notify {
				dispatcher.EXPECT().SendContactMessage(gomock.Any(), mailer.Contact{
					Name:    req.Name,
					Email:   req.Email,
					Message: req.Message,
				}).Return(tt.notifyErr)
			}

			svc := service.New(repo, dispatcher, mocks.NewOtel())

			res, err := svc.Create(context.Background(), req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, req.Email, res.Email)
		})
	}
}
