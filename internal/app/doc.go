// Package app is the composition root for glimpse.
//
// Run loads configuration (TOML file, .env, environment, flags), opens the
// zap diagnostics log, reads user prefs, builds the classification client and
// hands everything to the Bubble Tea UI, blocking until the user quits or the
// context is cancelled.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        base URL, log file, start dir
//	       ├─────> logging.NewLogger()  file-backed zap logger
//	       ├─────> prefs.Load()         theme, last directory
//	       ├─────> classify.NewClient() /predict client
//	       └─────> ui.Run()             TUI (blocks)
//
// Fatal errors (bad config, unwritable log directory, unusable base URL) are
// returned from Run. Prediction failures never are: the UI shows them as an
// "Error" prediction and the cause goes to the log.
package app
