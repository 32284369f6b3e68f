package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/keyrec/internal/config"
	"github.com/nixlim/keyrec/internal/debuglog"
	"github.com/nixlim/keyrec/internal/recorder"
	"github.com/nixlim/keyrec/internal/tui"
)

func main() {
	loadResult, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyrec: config error: %v\n", err)
		os.Exit(1)
	}
	cfg := loadResult.Config

	for _, w := range loadResult.Warnings {
		fmt.Fprintf(os.Stderr, "keyrec: config warning: %s\n", w)
	}

	shutdownMgr := tui.NewShutdownManager()

	var logger debuglog.Logger = debuglog.NopLogger{}
	if cfg.Debug.LogPath != "" {
		debugFile, err := os.OpenFile(cfg.Debug.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keyrec: failed to open debug log %q: %v\n", cfg.Debug.LogPath, err)
			os.Exit(1)
		}
		logger = debuglog.NewFileLogger(debugFile)
		shutdownMgr.FlushLog = func(ctx context.Context) error {
			done := make(chan error, 1)
			go func() {
				if err := debugFile.Sync(); err != nil {
					_ = debugFile.Close()
					done <- err
					return
				}
				done <- debugFile.Close()
			}()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	session := recorder.New(cfg.Display.ScrollbackLines, recorder.WithLogger(logger))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)

	log.SetOutput(io.Discard)

	model := tui.NewModel(cfg,
		tui.WithSession(session),
		tui.WithOnShutdown(func() {
			_ = shutdownMgr.Shutdown()
		}),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signals quit without the unsaved-events prompt; there is no terminal
	// left to answer it once SIGHUP arrives.
	go tui.QuitOnSignal(ctx, sigCh, p.Quit)

	_, runErr := p.Run()

	// The UI goroutine has stopped, so closing the session and the debug
	// log here cannot race with its writes.
	session.Close()
	_ = shutdownMgr.Shutdown()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "keyrec: %v\n", runErr)
		os.Exit(1)
	}
}
