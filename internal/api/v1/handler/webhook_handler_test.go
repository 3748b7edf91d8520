package handler

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookMux(secret string) *http.ServeMux {
	mux := http.NewServeMux()
	NewWebhookHandler(secret, zerolog.Nop()).RegisterRoutes(mux)
	return mux
}

func signPayload(payload []byte, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func TestWebhookAcceptsSignedPayload(t *testing.T) {
	mux := newWebhookMux(testWebhookSecret)
	payload := []byte(`{"id":"evt_test","object":"event","api_version":"2025-04-30.basil","type":"checkout.session.completed"}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now()))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Received bool `json:"received"`
	}
	decodeBody(t, rec, &body)
	if !body.Received {
		t.Fatal("expected received acknowledgement")
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	mux := newWebhookMux(testWebhookSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if !strings.HasPrefix(body.Message, "Webhook Error:") {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestWebhookWithoutSecretSkipsVerification(t *testing.T) {
	mux := newWebhookMux("")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", strings.NewReader(`{}`))
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	mux := newWebhookMux(testWebhookSecret)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stripe/webhook", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
