package sms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"innstay/config"
	"innstay/infras/otel/mocks"
	"innstay/infras/sms"
)

func newClient(baseURL string) sms.SMS {
	cfg := &config.Config{}
	cfg.External.SMS.BaseURL = baseURL
	cfg.External.SMS.APIKey = "test-key"
	cfg.External.SMS.Sender = "InnStay"

	return sms.New(cfg, mocks.NewOtel())
}

func TestSMS_SendText(t *testing.T) {
	t.Run("sent status is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "InnStay", r.URL.Query().Get("sender"))
			assert.Equal(t, "+6281234567890", r.URL.Query().Get("to"))
			assert.Equal(t, "Your booking is confirmed", r.URL.Query().Get("message"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"sent","message_id":"msg-1"}`))
		}))
		defer server.Close()

		err := newClient(server.URL).SendText(context.Background(), "+6281234567890", "Your booking is confirmed")

		assert.NoError(t, err)
	})

	t.Run("queued status is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"queued","message_id":"msg-2"}`))
		}))
		defer server.Close()

		err := newClient(server.URL).SendText(context.Background(), "+6281234567890", "hello")

		assert.NoError(t, err)
	})

	t.Run("rejected status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"rejected","error":"invalid number"}`))
		}))
		defer server.Close()

		err := newClient(server.URL).SendText(context.Background(), "not-a-number", "hello")

		assert.ErrorIs(t, err, sms.ErrGatewayRejected)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		err := newClient(server.URL).SendText(context.Background(), "+6281234567890", "hello")

		assert.ErrorIs(t, err, sms.ErrGatewayRejected)
	})
}
