// Command hexworldd runs the hex-grid voxel world simulation core as a
// standalone daemon: it loads configuration, builds a world.Manager and
// scheduler, and drives the tick loop until interrupted.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hexworld/internal/config"
	"hexworld/internal/server"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to hexworld daemon configuration file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	srv, err := server.New(cfg, nil, nil, nil)
	if err != nil {
		log.Fatalf("initialise server: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	srv.Run(ctx)

	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
