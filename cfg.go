package main

import (
	"context"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zucenko/showdown/config"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/server"
)

const feedBuffer = 256

var (
	configFile string
	serverURL  string
	replayDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "showdown",
		Short: "watch a shootout map feed",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&serverURL, "server", "", "feed websocket url, overrides config")
	rootCmd.Flags().StringVar(&replayDir, "replay", "", "play snapshot files from a directory instead of a server")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Viewer.ServerURL = serverURL
	}
	cfg.SetupLogging()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states <-chan *model.MapState
	if replayDir != "" {
		snapshots, err := server.LoadReplay(replayDir)
		if err != nil {
			return err
		}
		ch := make(chan *model.MapState, feedBuffer)
		go replayLocal(ctx, snapshots, cfg.Server.ReplayInterval, ch)
		states = ch
	} else {
		feed := server.NewFeedClient(cfg.Viewer.ServerURL, feedBuffer)
		go feed.Loop(ctx)
		states = feed.States
	}

	v, err := NewViewer(cfg.Viewer.Width, states)
	if err != nil {
		return err
	}
	return ebiten.Run(v.update, v.screenW, v.screenH, 1, cfg.Viewer.Title)
}

// replayLocal feeds snapshots to the viewer at the replay pace, then closes ch.
func replayLocal(ctx context.Context, snapshots []*model.MapState, interval time.Duration, ch chan<- *model.MapState) {
	defer close(ch)
	for i, s := range snapshots {
		if i > 0 && interval > 0 {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return
			}
		}
		select {
		case ch <- s:
		case <-ctx.Done():
			return
		}
	}
	log.Printf("replayLocal finished, %d snapshots", len(snapshots))
}
