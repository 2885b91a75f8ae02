package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	stderrors "errors"

	"pricewatch/internal/errors"
)

func TestWebhookSendSuccess(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	if err := n.Send(context.Background(), "AAPL price 165.00 is at or below threshold 170.00"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["text"] != "AAPL price 165.00 is at or below threshold 170.00" {
		t.Errorf("payload text = %q", gotBody["text"])
	}
}

func TestWebhookSendNon2xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	err := n.Send(context.Background(), "test")
	if err == nil {
		t.Fatal("Send succeeded, want error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want a single delivery attempt", attempts)
	}

	var dErr *errors.DeliveryError
	if !stderrors.As(err, &dErr) {
		t.Fatalf("error type = %T, want *errors.DeliveryError", err)
	}
	if dErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", dErr.Status, http.StatusBadGateway)
	}
	if dErr.Reason != "upstream unavailable" {
		t.Errorf("reason = %q", dErr.Reason)
	}
}

func TestWebhookSendEmptyURL(t *testing.T) {
	n := NewWebhookNotifier("")
	err := n.Send(context.Background(), "test")

	var dErr *errors.DeliveryError
	if !stderrors.As(err, &dErr) {
		t.Fatalf("error = %v, want *errors.DeliveryError", err)
	}
	if dErr.Status != 0 {
		t.Errorf("status = %d, want 0", dErr.Status)
	}
}

func TestNoOpNotifier(t *testing.T) {
	n := NewNoOpNotifier()
	if err := n.Send(context.Background(), "anything"); err != nil {
		t.Errorf("Send: %v", err)
	}
}
