package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/glimpse/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	baseURL := flag.String("url", "", "classification endpoint base URL (optional)")
	startDir := flag.String("dir", "", "directory to start browsing in (optional)")
	logPath := flag.String("log", "", "diagnostics log file (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		BaseURL:    *baseURL,
		StartDir:   *startDir,
		LogPath:    *logPath,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "glimpse: %v\n", err)
		return 1
	}
	return 0
}
