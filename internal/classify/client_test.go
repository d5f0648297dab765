package classify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("127.0.0.1:8000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8000" {
		t.Fatalf("url = %q, want http://127.0.0.1:8000", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL blank returned nil error, want error")
	}
}

func TestClient_PredictURLJoinsPrefix(t *testing.T) {
	c, err := NewClient("https://example.com/api/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got, want := c.PredictURL(), "https://example.com/api/predict"; got != want {
		t.Fatalf("PredictURL = %q, want %q", got, want)
	}

	c, err = NewClient("example.com:9000")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got, want := c.PredictURL(), "http://example.com:9000/predict"; got != want {
		t.Fatalf("PredictURL = %q, want %q", got, want)
	}
}

func TestClient_PredictSendsMultipartImage(t *testing.T) {
	t.Parallel()

	var (
		gotMethod    string
		gotPath      string
		gotPart      []byte
		gotFilename  string
		gotPartType  string
		gotRequestID string
		gotUserAgent string
		partCount    int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUserAgent = r.Header.Get("User-Agent")

		reader, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for {
			part, err := reader.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			partCount++
			if part.FormName() == FieldName {
				gotFilename = part.FileName()
				gotPartType = part.Header.Get("Content-Type")
				gotPart, _ = io.ReadAll(part)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"class_name": "cat", "confidence": 0.9321})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	pred, err := c.Predict(ctx, Upload{Filename: "cat.png", Data: pngHeader, RequestID: "req-42"})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if pred.ClassName != "cat" || pred.Confidence != 0.9321 {
		t.Fatalf("Predict = %#v, want cat/0.9321", pred)
	}
	if gotMethod != http.MethodPost || gotPath != "/predict" {
		t.Fatalf("request = %s %s, want POST /predict", gotMethod, gotPath)
	}
	if partCount != 1 {
		t.Fatalf("multipart parts = %d, want 1", partCount)
	}
	if string(gotPart) != string(pngHeader) {
		t.Fatalf("image part = %q, want raw file bytes", gotPart)
	}
	if gotFilename != "cat.png" {
		t.Fatalf("filename = %q, want cat.png", gotFilename)
	}
	if gotPartType != "image/png" {
		t.Fatalf("part Content-Type = %q, want image/png", gotPartType)
	}
	if gotRequestID != "req-42" {
		t.Fatalf("X-Request-ID = %q, want req-42", gotRequestID)
	}
	if !strings.HasPrefix(gotUserAgent, "glimpse/") {
		t.Fatalf("User-Agent = %q, want glimpse/*", gotUserAgent)
	}
}

func TestClient_PredictFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json/predict":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/boom/predict":
			http.Error(w, `{"detail":"model offline"}`, http.StatusInternalServerError)
		case "/teapot/predict":
			w.WriteHeader(http.StatusTeapot)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	predict := func(prefix string) error {
		c, err := NewClient(server.URL + prefix)
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}
		_, err = c.Predict(context.Background(), Upload{Filename: "x.png", Data: pngHeader})
		return err
	}

	if err := predict("/bad-json"); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("bad json error = %v, want decode response error", err)
	}

	err := predict("/boom")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("500 error = %v, want *StatusError code 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("500 error = %q, want it to mention the status", err.Error())
	}

	if err := predict("/teapot"); !errors.As(err, &statusErr) || statusErr.Code != http.StatusTeapot {
		t.Fatalf("418 error = %v, want *StatusError code 418", err)
	}
}

func TestClient_PredictTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Predict(context.Background(), Upload{Data: pngHeader})
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("Predict error = %v, want execute request error", err)
	}
}

func TestPrediction_Formatting(t *testing.T) {
	cases := []struct {
		name string
		in   Prediction
		want string
	}{
		{"cat", Prediction{ClassName: "cat", Confidence: 0.9321}, "93.21%"},
		{"certain", Prediction{ClassName: "dog", Confidence: 1}, "100.00%"},
		{"error", ErrorPrediction(), "0.00%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Percent(); got != tc.want {
				t.Fatalf("Percent() = %q, want %q", got, tc.want)
			}
		})
	}

	if !ErrorPrediction().IsError() {
		t.Fatalf("ErrorPrediction().IsError() = false, want true")
	}
	if (Prediction{ClassName: "Error", Confidence: 0.5}).IsError() {
		t.Fatalf("a real class named Error with confidence should not be the sentinel")
	}
	if got := (Prediction{}).Label(); got != "unknown" {
		t.Fatalf("Label() = %q, want unknown", got)
	}
}
