package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "Driver not found", "slug", "unknown-driver")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != ContentTypeJSON {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["error"] != "Driver not found" || body["slug"] != "unknown-driver" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := SendSSEEvent(rec, rec, "heartbeat", map[string]bool{"ok": true}); err != nil {
		t.Fatalf("SendSSEEvent err: %v", err)
	}
	if got, want := rec.Body.String(), "event: heartbeat\ndata: {\"ok\":true}\n\n"; got != want {
		t.Fatalf("unexpected frame %q", got)
	}
	if !rec.Flushed {
		t.Fatal("expected flush")
	}
}
