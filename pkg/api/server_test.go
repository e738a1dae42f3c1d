package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("GET /health body = %s, want it to report healthy", w.Body.String())
	}
}

func TestConvertEndpoint(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"beats","target_formats":["frames","timecode"],"input_value":24,"bpm":192,"fps":29.97}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	want := `{"frames":225,"timecode":"7:15"}`
	if got := w.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestConvertEndpointSecondsFirst(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"timecode","target_formats":["frames","timecode","seconds"],"input_value":"0:45.59","fps":29.97}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	want := `{"seconds":45.59,"frames":1366,"timecode":"45:17"}`
	if got := w.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestConvertEndpointSingleStringTarget(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"timecode","target_formats":"seconds","input_value":"45.2525"}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	want := `{"seconds":45.2525}`
	if got := w.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestConvertEndpointFloatRejected(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"beats","target_formats":["frames"],"input_value":24.5,"bpm":192,"fps":29.97}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp["kind"] != "invalid_input" {
		t.Errorf("kind = %q, want %q", resp["kind"], "invalid_input")
	}
}

func TestConvertEndpointMissingFPS(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"beats","target_formats":["frames"],"input_value":24,"bpm":192}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp["kind"] != "missing_param" {
		t.Errorf("kind = %q, want %q", resp["kind"], "missing_param")
	}
}

func TestConvertEndpointRejectsUnknownTarget(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"beats","target_formats":["hours"],"input_value":24,"bpm":192,"fps":29.97}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestConvertEndpointRequiresRefFormat(t *testing.T) {
	router := NewRouter()
	w := postJSON(t, router, "/api/v1/convert", `{"target_formats":["frames"],"input_value":24}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestConvertEndpointRequiresInputValue(t *testing.T) {
	router := NewRouter()
	tests := []struct {
		name string
		body string
	}{
		{"omitted", `{"ref_format":"beats","target_formats":["seconds"],"bpm":192}`},
		{"null", `{"ref_format":"beats","target_formats":["seconds"],"input_value":null,"bpm":192}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/v1/convert", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "input_value") {
				t.Errorf("body = %s, want it to name input_value", w.Body.String())
			}
		})
	}
}

func TestConvertEndpointZeroInputValue(t *testing.T) {
	router := NewRouter()
	body := `{"ref_format":"beats","target_formats":["seconds"],"input_value":0,"bpm":192}`
	w := postJSON(t, router, "/api/v1/convert", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	want := `{"seconds":0}`
	if got := w.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestListFormats(t *testing.T) {
	router := NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{"video_frames", "timecode", "ticks_per_beat", "rounding_threshold"} {
		if !strings.Contains(body, want) {
			t.Errorf("formats body missing %q: %s", want, body)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/convert", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("OPTIONS status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}
