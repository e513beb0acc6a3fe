package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"resto/config"
	"resto/infras/otel"
	"resto/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const contactSubject = "New Contact Form Submission"

type web3FormsPayload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	ToName    string `json:"to_name,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type web3Forms struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

// NewWeb3Forms submits notifications to the Web3Forms form relay. A nil client
// gets one with the configured timeout.
func NewWeb3Forms(cfg *config.Config, otl otel.Otel, client *http.Client) Dispatcher {
	if client == nil {
		timeout := time.Duration(cfg.External.Mailer.Web3Forms.TimeoutMs) * time.Millisecond
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		client = &http.Client{Timeout: timeout}
	}

	return &web3Forms{
		cfg:    cfg,
		otel:   otl,
		client: client,
	}
}

func (w *web3Forms) SendReservationConfirmation(ctx context.Context, confirmation Confirmation) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".web3forms.SendReservationConfirmation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("reservation_id", confirmation.ReservationID)

	return w.submit(ctx, web3FormsPayload{
		AccessKey: w.cfg.External.Mailer.Web3Forms.AccessKey,
		Subject:   w.cfg.External.Mailer.Subject,
		FromName:  w.cfg.External.Mailer.FromName,
		ToName:    confirmation.Name,
		Name:      confirmation.Name,
		Email:     confirmation.Email,
		Message:   confirmation.body(),
	})
}

func (w *web3Forms) SendContactMessage(ctx context.Context, contact Contact) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".web3forms.SendContactMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return w.submit(ctx, web3FormsPayload{
		AccessKey: w.cfg.External.Mailer.Web3Forms.AccessKey,
		Subject:   contactSubject,
		FromName:  w.cfg.External.Mailer.FromName,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
	})
}

func (w *web3Forms) submit(ctx context.Context, payload web3FormsPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.External.Mailer.Web3Forms.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	resp, err := w.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to reach web3forms")

		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read notification response: %w", err)
	}

	reply := string(raw)
	if resp.StatusCode >= http.StatusBadRequest || !gjson.Valid(reply) || !gjson.Get(reply, "success").Bool() {
		message := gjson.Get(reply, "message").String()
		log.Error().Int("status", resp.StatusCode).Str("message", message).Msg("web3forms rejected notification")

		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, message)
	}

	return nil
}
