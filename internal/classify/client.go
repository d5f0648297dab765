package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Predictor classifies an uploaded image.
// This interface is implemented by *Client and can be used for testing.
type Predictor interface {
	Predict(ctx context.Context, upload Upload) (Prediction, error)
}

// Ensure Client implements Predictor at compile time.
var _ Predictor = (*Client)(nil)

// Client talks to the classification endpoint.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// FieldName is the multipart part that carries the image bytes.
	FieldName = "image"

	predictPath      = "predict"
	defaultUserAgent = "glimpse/0.1"
	defaultFilename  = "image"
)

// NewClient builds a Client for baseURL, which may be a full URL or a bare
// host:port (http is assumed).
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		// No timeout: a slow endpoint keeps the submission pending until it
		// answers or ctx is cancelled.
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized endpoint root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// PredictURL returns the absolute /predict URL.
func (c *Client) PredictURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.JoinPath(predictPath).String()
}

// Predict posts the image as multipart form data and decodes the prediction.
// Exactly one request is issued; there are no retries.
func (c *Client) Predict(ctx context.Context, upload Upload) (Prediction, error) {
	if c == nil {
		return Prediction{}, fmt.Errorf("client is nil")
	}

	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return Prediction{}, err
	}

	endpoint := c.PredictURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if upload.RequestID != "" {
		req.Header.Set("X-Request-ID", upload.RequestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Prediction{}, &StatusError{Path: req.URL.Path, Code: resp.StatusCode}
	}

	var payload Prediction
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Prediction{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

func encodeUpload(upload Upload) (*bytes.Buffer, string, error) {
	filename := strings.TrimSpace(upload.Filename)
	if filename == "" {
		filename = defaultFilename
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldName, escapeQuotes(filename)))
	header.Set("Content-Type", mimetype.Detect(upload.Data).String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
