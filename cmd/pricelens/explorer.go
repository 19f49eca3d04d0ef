package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pricelens/pricelens/internal/config"
	"github.com/pricelens/pricelens/internal/settings"
	"github.com/pricelens/pricelens/internal/sources"
	"github.com/pricelens/pricelens/internal/tui"
)

// runExplorer wires the loader, snapshot store, and file watcher to the
// TUI and blocks until the user quits.
func runExplorer(cfg config.Config) {
	st, err := settings.Load()
	if err != nil {
		log.Printf("settings: %v", err)
		st = settings.DefaultSettings()
	}

	model := tui.NewModel(st)

	srcs, err := sources.FromSpecs(cfg.Sources)
	if err != nil {
		// Source specs are user-written config; surface a bad one inside
		// the TUI instead of a bare stderr line.
		model.SetFatalError(err.Error())
		runProgram(tea.NewProgram(model, tea.WithAltScreen()))
		return
	}

	loader := sources.NewLoader(srcs)
	loader.SetTimeout(cfg.FetchTimeout())
	loader.SetSnapshotTTL(cfg.SnapshotTTL())
	if snapStore := openSnapshotStore(cfg); snapStore != nil {
		defer snapStore.Close()
		loader.SetStore(snapStore)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var program *tea.Program

	reload := func() {
		go func() {
			res := loader.LoadAll(ctx)
			if program != nil {
				program.Send(tui.CatalogMsg(res))
			}
		}()
	}
	model.SetOnReload(reload)

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	reload()

	if events, err := sources.Watch(ctx, srcs); err != nil {
		log.Printf("file watch: %v", err)
	} else if events != nil {
		go func() {
			for range events {
				program.Send(tui.CatalogMsg(loader.LoadAll(ctx)))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	runProgram(program)
}

func runProgram(program *tea.Program) {
	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}
