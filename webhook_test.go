package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendWebhookEvent(t *testing.T) {
	var path string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(okEnvelope(`{"message": "Content flagged for review"}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.SendWebhookEvent(context.Background(), WebhookEvent{
		EventType:   WebhookSpamDetected,
		ContentType: "post",
		ContentID:   5541,
		Confidence:  0.97,
	})
	if err != nil {
		t.Fatalf("SendWebhookEvent() error = %v", err)
	}

	if path != "/admin-panel/api/webhooks/automation/" {
		t.Errorf("path = %q, want %q", path, "/admin-panel/api/webhooks/automation/")
	}
	if got := body["event_type"]; got != "spam_detected" {
		t.Errorf("event_type = %v, want %q", got, "spam_detected")
	}
	if got := body["content_id"]; got != float64(5541) {
		t.Errorf("content_id = %v, want 5541", got)
	}
	if got := body["confidence"]; got != 0.97 {
		t.Errorf("confidence = %v, want 0.97", got)
	}
	// empty optional fields stay off the wire
	if _, present := body["reason"]; present {
		t.Error("body contains empty reason, want omitted")
	}
}

func TestSendWebhookEvent_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "error": "Invalid event type"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.SendWebhookEvent(context.Background(), WebhookEvent{EventType: "bogus"})
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindValidation)
	}
}
