package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const bulkResultBody = `{"processed": 2, "successful": 2, "failed": 0, "errors": []}`

func TestBulkBanUsers(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin-panel/api/bulk-actions/" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/admin-panel/api/bulk-actions/")
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(okEnvelope(bulkResultBody)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.BulkBanUsers(context.Background(), []int64{3, 9}, "temporary", 7, "repeated spam")
	if err != nil {
		t.Fatalf("BulkBanUsers() error = %v", err)
	}

	if got := body["action_type"]; got != "ban" {
		t.Errorf("action_type = %v, want %q", got, "ban")
	}
	if got := body["target_type"]; got != "users" {
		t.Errorf("target_type = %v, want %q", got, "users")
	}
	wantIDs := []any{float64(3), float64(9)}
	if got, _ := body["target_ids"].([]any); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("target_ids = %v, want %v", got, wantIDs)
	}

	params, _ := body["params"].(map[string]any)
	wantParams := map[string]any{
		"ban_type":      "temporary",
		"duration":      float64(7),
		"reason":        "repeated spam",
		"public_reason": "",
	}
	if !reflect.DeepEqual(params, wantParams) {
		t.Errorf("params = %v, want %v", params, wantParams)
	}

	if result.Processed != 2 || result.Successful != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 processed / 2 successful / 0 failed", result)
	}
}

func TestBulkAction_NilParamsSentAsEmptyObject(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(okEnvelope(bulkResultBody)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.BulkActivateUsers(context.Background(), []int64{5})
	if err != nil {
		t.Fatalf("BulkActivateUsers() error = %v", err)
	}

	params, ok := body["params"].(map[string]any)
	if !ok {
		t.Fatalf("params = %v (%T), want an object", body["params"], body["params"])
	}
	if len(params) != 0 {
		t.Errorf("params = %v, want empty object", params)
	}
	if got := body["action_type"]; got != "activate" {
		t.Errorf("action_type = %v, want %q", got, "activate")
	}
}

func TestBulkWarnUsers(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(okEnvelope(bulkResultBody)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.BulkWarnUsers(context.Background(), []int64{4},
		"harassment", "high", "Final warning", "Next violation is a ban.")
	if err != nil {
		t.Fatalf("BulkWarnUsers() error = %v", err)
	}

	params, _ := body["params"].(map[string]any)
	wantParams := map[string]any{
		"warning_type": "harassment",
		"severity":     "high",
		"title":        "Final warning",
		"message":      "Next violation is a ban.",
	}
	if !reflect.DeepEqual(params, wantParams) {
		t.Errorf("params = %v, want %v", params, wantParams)
	}
}

func TestBulkModerate(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(okEnvelope(`{"processed": 3, "successful": 2, "failed": 1, "errors": ["item 7: already reviewed"]}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.BulkModerate(context.Background(), []int64{7, 8, 9}, ModerationDelete, "policy violation")
	if err != nil {
		t.Fatalf("BulkModerate() error = %v", err)
	}

	if got := body["action_type"]; got != "delete" {
		t.Errorf("action_type = %v, want %q", got, "delete")
	}
	if got := body["target_type"]; got != "moderation" {
		t.Errorf("target_type = %v, want %q", got, "moderation")
	}

	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1", len(result.Errors))
	}
}
