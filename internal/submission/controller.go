// Package submission implements the submit-and-display state machine behind
// the glimpse UI.
//
// A Controller is driven from a single event loop (the Bubble Tea Update
// goroutine) and is not safe for concurrent use. Asynchronous work (preview
// reads, predictions) runs elsewhere and reports back through ApplyPreview and
// Complete, each tagged with the selection generation it was started for.
package submission

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/glimpse/internal/classify"
	"github.com/five82/glimpse/internal/logging"
	"github.com/five82/glimpse/internal/preview"
)

var (
	// ErrNoFile rejects a submit with nothing selected.
	ErrNoFile = errors.New("please select an image first")
	// ErrBusy rejects a submit while another one is pending.
	ErrBusy = errors.New("a prediction is already in progress")
)

// Phase is the coarse state of a submission cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhasePending
	PhaseDisplayed
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePending:
		return "pending"
	case PhaseDisplayed:
		return "displayed"
	default:
		return "idle"
	}
}

// File is the user's current selection.
type File struct {
	Name string
	Path string
	Size int64
}

// Ticket identifies one in-flight submission.
type Ticket struct {
	Seq       uint64
	RequestID string
	File      File
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Phase      Phase
	File       File
	HasFile    bool
	Preview    preview.Preview
	HasPreview bool
	Result     classify.Prediction
	HasResult  bool
	Loading    bool
}

// Controller holds the selection, its preview, the latest prediction and the
// loading flag.
type Controller struct {
	logger *zap.Logger

	seq        uint64
	file       File
	hasFile    bool
	preview    preview.Preview
	hasPreview bool
	result     classify.Prediction
	hasResult  bool
	loading    bool
}

// New returns an idle controller. A nil logger discards diagnostics.
func New(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{logger: logger}
}

// Select makes f the current file, drops the old preview and any prediction,
// and returns the generation to tag the preview read with.
func (c *Controller) Select(f File) uint64 {
	c.seq++
	c.file = f
	c.hasFile = true
	c.preview = preview.Preview{}
	c.hasPreview = false
	c.result = classify.Prediction{}
	c.hasResult = false
	c.logger.Debug("file selected", zap.String("path", f.Path), zap.Uint64("seq", c.seq))
	return c.seq
}

// ApplyPreview stores p when seq is still the current selection. Results of
// superseded reads are dropped.
func (c *Controller) ApplyPreview(seq uint64, p preview.Preview) bool {
	if seq != c.seq || !c.hasFile {
		c.logger.Debug("stale preview discarded", zap.Uint64("seq", seq), zap.Uint64("current", c.seq))
		return false
	}
	c.preview = p
	c.hasPreview = true
	return true
}

// Begin starts a submission. It fails with ErrNoFile when nothing is selected
// and ErrBusy while another submission is pending; neither changes state.
func (c *Controller) Begin() (Ticket, error) {
	if !c.hasFile {
		return Ticket{}, ErrNoFile
	}
	if c.loading {
		return Ticket{}, ErrBusy
	}
	c.loading = true
	return Ticket{Seq: c.seq, RequestID: uuid.NewString(), File: c.file}, nil
}

// Complete finishes the submission for t. Loading is always cleared. A failed
// submission stores the error sentinel and logs the cause. When a newer file
// was selected while t was in flight the outcome is discarded; the return
// value reports whether it was stored.
func (c *Controller) Complete(t Ticket, result classify.Prediction, err error) bool {
	c.loading = false

	log := logging.WithOperation(c.logger, "predict", t.RequestID)
	if err != nil {
		log.Warn("prediction failed", zap.String("file", t.File.Path), zap.Error(err))
		result = classify.ErrorPrediction()
	}

	if t.Seq != c.seq {
		log.Info("prediction discarded for superseded selection",
			zap.Uint64("seq", t.Seq), zap.Uint64("current", c.seq))
		return false
	}

	c.result = result
	c.hasResult = true
	if err == nil {
		log.Info("prediction received",
			zap.String("class_name", result.ClassName), zap.Float64("confidence", result.Confidence))
	}
	return true
}

// Loading reports whether a submission is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Phase derives the state-machine position from the stored fields.
func (c *Controller) Phase() Phase {
	switch {
	case c.loading:
		return PhasePending
	case c.hasResult:
		return PhaseDisplayed
	case c.hasFile:
		return PhaseReady
	default:
		return PhaseIdle
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:      c.Phase(),
		File:       c.file,
		HasFile:    c.hasFile,
		Preview:    c.preview,
		HasPreview: c.hasPreview,
		Result:     c.result,
		HasResult:  c.hasResult,
		Loading:    c.loading,
	}
}
