package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"innstay/config"
	"innstay/infras/otel"
	"innstay/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeoutSeconds = 10

	statusSent   = "sent"
	statusQueued = "queued"
)

var ErrGatewayRejected = errors.New("sms gateway rejected the message")

// gatewayResponse is the structured reply of the messaging gateway. Delivery is
// accepted only on an explicit sent/queued status, never inferred from the
// transport status alone.
type gatewayResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

type SMS interface {
	SendText(ctx context.Context, to, message string) error
}

type smsImpl struct {
	client *http.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) SMS {
	timeout := cfg.External.SMS.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &smsImpl{
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		config: cfg,
		otel:   otl,
	}
}

// SendText dispatches a text message through the gateway. Callers treat
// failures as non-fatal; nothing here rolls back the action that triggered the
// notification.
func (s *smsImpl) SendText(ctx context.Context, to, message string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelSMSScopeName+".SendText")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("sms.to", to)

	endpoint, err := url.Parse(s.config.External.SMS.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid sms gateway base url: %w", err)
	}

	query := endpoint.Query()
	query.Set("api_key", s.config.External.SMS.APIKey)
	query.Set("sender", s.config.External.SMS.Sender)
	query.Set("to", to)
	query.Set("message", message)
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build sms gateway request: %w", err)
	}

	resp, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned status %d: %w", resp.StatusCode, ErrGatewayRejected)
	}

	var reply gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}

	if reply.Status != statusSent && reply.Status != statusQueued {
		log.Warn().Str("status", reply.Status).Str("error", reply.Error).Msg("sms gateway did not accept message")

		return fmt.Errorf("gateway status %q: %w", reply.Status, ErrGatewayRejected)
	}

	log.Info().Str("message_id", reply.MessageID).Msg("sms dispatched")

	return nil
}
