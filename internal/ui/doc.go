// Package ui is the glimpse terminal interface, built on Bubble Tea.
//
// # Layout
//
//   - Header: logo, submission phase badge, endpoint
//   - Command bar: key hints (predict is struck through while pending)
//   - Left pane: file picker limited to image extensions
//   - Right pane: selected file, preview thumbnail, prediction
//
// # Event Flow
//
// All state changes go through a submission.Controller owned by the Model and
// touched only from Update, so no locking is needed. Slow work runs in
// commands:
//
//  1. Selecting a file calls Controller.Select, which clears any prediction,
//     and schedules loadPreviewCmd tagged with the selection generation.
//  2. previewMsg lands via Controller.ApplyPreview; reads for superseded
//     selections are ignored.
//  3. p calls Controller.Begin. With nothing selected an alert modal is
//     shown and no request is made. Otherwise predictCmd issues one request
//     and the spinner runs.
//  4. predictionMsg goes to Controller.Complete, which always clears the
//     loading flag and stores either the prediction or the "Error" sentinel.
//
// Failure details are written to the zap log only; the UI shows the
// sentinel.
package ui
