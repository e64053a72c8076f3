package main

import (
	"snake-autopilot/ui/term"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	RunE:  runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	runner, err := a.newSession()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(ctx) })
	g.Go(func() error {
		// quitting the view ends the session
		defer cancel()
		return term.Run(ctx, screen, runner)
	})
	return g.Wait()
}
