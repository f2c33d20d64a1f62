package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zucenko/showdown/config"
	"github.com/zucenko/showdown/server"
)

type Server struct {
	router     *way.Router
	FeedServer *server.FeedServer
}

var (
	configFile string
	replayDir  string
	port       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "showdown-server",
		Short: "snapshot feed for the showdown map viewer",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&replayDir, "replay", "", "directory of snapshot files to replay")
	rootCmd.Flags().StringVar(&port, "port", "", "listen port, overrides config and PORT")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if replayDir != "" {
		cfg.Server.ReplayDir = replayDir
	}
	if port != "" {
		cfg.Server.Port = port
	}
	cfg.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := Server{
		FeedServer: server.NewFeedServer(cfg.Server.FrameWidth, cfg.Server.RequestTimeout, cfg.Server.SubscriberBuffer),
	}
	go s.FeedServer.Loop(ctx)
	s.routes()

	if cfg.Server.ReplayDir != "" {
		states, err := server.LoadReplay(cfg.Server.ReplayDir)
		if err != nil {
			return err
		}
		go func() {
			if err := s.FeedServer.Replay(ctx, states, cfg.Server.ReplayInterval); err != nil {
				log.Warnf("replay stopped: %v", err)
			}
		}()
	}

	httpServer := &http.Server{Addr: ":" + cfg.Server.Port, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdown)
	}()

	log.Printf("Listening on port %s", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	<-s.FeedServer.Done
	return nil
}
