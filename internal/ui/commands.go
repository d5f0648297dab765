package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/glimpse/internal/classify"
	"github.com/five82/glimpse/internal/logging"
	"github.com/five82/glimpse/internal/preview"
	"github.com/five82/glimpse/internal/submission"
)

// Messages

type previewMsg struct {
	seq     uint64
	preview preview.Preview
	err     error
}

type predictionMsg struct {
	ticket submission.Ticket
	result classify.Prediction
	err    error
}

// Commands

func loadPreviewCmd(seq uint64, path string) tea.Cmd {
	return func() tea.Msg {
		p, err := preview.Load(path)
		return previewMsg{seq: seq, preview: p, err: err}
	}
}

// predictCmd performs exactly one request for ticket. Every outcome,
// including a panic in the client, comes back as a predictionMsg so the
// loading flag is always cleared.
func predictCmd(ctx context.Context, client classify.Predictor, ticket submission.Ticket) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = predictionMsg{ticket: ticket, err: logging.NewOperationError("predict", ticket.RequestID, fmt.Errorf("panic: %v", r))}
			}
		}()

		if client == nil {
			return predictionMsg{ticket: ticket, err: logging.NewOperationError("predict", ticket.RequestID, fmt.Errorf("client is nil"))}
		}
		data, err := os.ReadFile(ticket.File.Path)
		if err != nil {
			return predictionMsg{ticket: ticket, err: logging.NewOperationError("predict", ticket.RequestID, fmt.Errorf("read image: %w", err))}
		}
		result, err := client.Predict(ctx, classify.Upload{
			Filename:  ticket.File.Name,
			Data:      data,
			RequestID: ticket.RequestID,
		})
		return predictionMsg{ticket: ticket, result: result, err: logging.NewOperationError("predict", ticket.RequestID, err)}
	}
}
