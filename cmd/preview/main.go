// Command preview drives the landing page state machine from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cultr.xyz/cultr-web/internal/config"
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/preview"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "preview:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	site, err := content.Load(cfg.Site.ContentPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// An unavailable quote renders as placeholders.
	q, _ := market.NewClient(cfg.Market.URL).Quote(ctx)

	_, err = tea.NewProgram(preview.New(site, q), tea.WithAltScreen()).Run()
	return err
}
