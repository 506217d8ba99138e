package v1_test

import (
	"net/http"
	"testing"

	"github.com/jtompuri/writing-contest-web-app-sub000/testutil"
)

func TestPing(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/ping", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	testutil.Decode(t, w, &resp)
	if resp["message"] != "pong" {
		t.Errorf("Message = %q, want %q", resp["message"], "pong")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/metrics", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
}
