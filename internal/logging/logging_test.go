package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_EmptyPathIsNop(t *testing.T) {
	logger, err := NewLogger("  ")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if logger == nil {
		t.Fatalf("NewLogger returned nil logger")
	}
	logger.Info("dropped")
}

func TestNewLogger_WritesJSONWithOperationFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "glimpse.log")

	logger, err := NewLogger(path)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	WithOperation(logger, "predict", "req-1").Warn("prediction failed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("log line %q is not JSON: %v", line, err)
	}
	if record["operation"] != "predict" || record["request_id"] != "req-1" {
		t.Fatalf("record = %v, want operation=predict request_id=req-1", record)
	}
	if _, ok := record["timestamp"]; !ok {
		t.Fatalf("record = %v, want timestamp key", record)
	}
}

func TestOperationError(t *testing.T) {
	if NewOperationError("predict", "id", nil) != nil {
		t.Fatalf("NewOperationError(nil) should return nil")
	}

	base := errors.New("boom")
	err := NewOperationError("predict", "abc", base)
	if !errors.Is(err, base) {
		t.Fatalf("errors.Is(%v, base) = false, want true", err)
	}
	if got, want := err.Error(), "predict (request_id=abc): boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	err = NewOperationError("preview", "", base)
	if got, want := err.Error(), "preview: boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Operation != "preview" {
		t.Fatalf("errors.As = %#v, want operation preview", opErr)
	}
}
