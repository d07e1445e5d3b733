package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"task-reminder-bot/pkg/response"
)

func TestDateMarshalJSON(t *testing.T) {
	tm := time.Date(2026, 2, 11, 23, 59, 59, 0, time.UTC)

	b, err := json.Marshal(response.Date(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling Date: %v", err)
	}
	if string(b) != `"2026-02-11"` {
		t.Errorf("got %s", b)
	}
}

func TestDateTimeMarshalJSON(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	tm := time.Date(2026, 2, 11, 16, 0, 0, 0, msk)

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	// Wall clock is kept in the value's own zone.
	if string(b) != `"2026-02-11 16:00:00"` {
		t.Errorf("got %s", b)
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := response.NewHTTPError(404, 404, "task not found")
	if err.Error() != "task not found" {
		t.Errorf("got %q", err.Error())
	}
}
