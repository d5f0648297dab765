package classify

import (
	"fmt"
	"strings"
)

// ErrorClassName is the class reported when a prediction could not be obtained.
const ErrorClassName = "Error"

// Prediction mirrors the payload returned by /predict.
type Prediction struct {
	ClassName  string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
}

// ErrorPrediction returns the sentinel shown when a submission fails for any reason.
func ErrorPrediction() Prediction {
	return Prediction{ClassName: ErrorClassName, Confidence: 0}
}

// IsError reports whether p is the failure sentinel.
func (p Prediction) IsError() bool {
	return p.ClassName == ErrorClassName && p.Confidence == 0
}

// Percent renders the confidence as a percentage with two decimals.
func (p Prediction) Percent() string {
	return fmt.Sprintf("%.2f%%", p.Confidence*100)
}

// Label returns the class name, or "unknown" when the endpoint left it blank.
func (p Prediction) Label() string {
	if name := strings.TrimSpace(p.ClassName); name != "" {
		return name
	}
	return "unknown"
}

// Upload is a single image submission.
type Upload struct {
	Filename  string
	Data      []byte
	RequestID string
}

// StatusError reports a non-2xx response from the endpoint. The body is not inspected.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}
