package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AG66666678/lookcc/internal/config"
	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/detect"
	"github.com/AG66666678/lookcc/internal/probes"
	"github.com/AG66666678/lookcc/internal/tui"
)

func runDashboard(cfg config.Config) {
	accounts := assembleAccounts(cfg)
	interval := time.Duration(cfg.UI.RefreshIntervalSeconds) * time.Second

	detector := core.NewDetector(probes.Ordered())
	engine := core.NewEngine(detector, interval)
	engine.SetAccounts(accounts)

	model := tui.NewModel(cfg.UI.WarnThreshold, cfg.UI.CritThreshold, accounts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var program *tea.Program

	model.SetOnRefresh(func() {
		go engine.RefreshAll(ctx)
	})

	program = tea.NewProgram(model, tea.WithAltScreen())

	engine.OnUpdate(func(records map[string]core.UsageRecord) {
		program.Send(tui.RecordsMsg(records))
	})
	detector.OnTransition(func(state core.DetectState) {
		program.Send(tui.ProbeStateMsg(state))
	})

	watcher, err := config.Watch(func(next config.Config) {
		next.UI = cfg.UI // interval and thresholds stay fixed for the session
		accounts := assembleAccounts(next)
		engine.SetAccounts(accounts)
		program.Send(tui.AccountsMsg(accounts))
		go engine.RefreshAll(ctx)
	})
	if err != nil {
		log.Printf("dashboard: config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	go engine.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}

// assembleAccounts combines configured, auto-detected, and env-discovered
// accounts, with stored credentials applied to accounts carrying none.
func assembleAccounts(cfg config.Config) []core.Account {
	if cfg.AutoDetect {
		cfg.AutoDetectedAccounts = core.MergeAccounts(cfg.AutoDetectedAccounts, detect.AutoDetect().Accounts)
	}

	accounts, err := config.EffectiveAccounts(cfg)
	if err != nil {
		log.Printf("dashboard: credentials store: %v", err)
	}
	return accounts
}
