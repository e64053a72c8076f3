package main

import (
	"context"
	"runtime"

	"snake-autopilot/game"
	"snake-autopilot/ui"
	"snake-autopilot/ui/keys"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	// raylib must stay on the main thread
	runtime.LockOSThread()
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a window",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	runner, err := a.newSession()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(ctx) })

	rl.InitWindow(1000, 900, "Snake Autopilot")
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	var snap game.Snapshot
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		select {
		case snap = <-runner.Snapshots():
		default:
		}

		if quit := handleKeys(ctx, runner, renderer, snap); quit {
			break
		}
		if snap.Size > 0 {
			renderer.Draw(snap)
		} else {
			rl.BeginDrawing()
			rl.ClearBackground(rl.Black)
			rl.EndDrawing()
		}
	}
	rl.CloseWindow()

	cancel()
	return g.Wait()
}

func handleKeys(ctx context.Context, runner *game.Runner, renderer *ui.Renderer, snap game.Snapshot) bool {
	for _, k := range ui.PollKeys() {
		switch k {
		case keys.Quit:
			return true
		case keys.Overlay:
			renderer.Overlay = !renderer.Overlay
			continue
		case keys.Gridlines:
			renderer.Gridlines = !renderer.Gridlines
			continue
		}
		if cmd, ok := keys.CommandFor(k, snap); ok {
			if err := runner.Send(ctx, cmd); err != nil {
				return true
			}
		}
	}
	return false
}
