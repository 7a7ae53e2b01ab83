package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authdemo/internal/buildinfo"
	"github.com/dmitrijs2005/authdemo/internal/client/cli"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/tui"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	// The full-screen UI owns the terminal, so its logs go to a file.
	var logOut io.Writer = os.Stderr
	if cfg.UI == config.UITUI {
		f, err := os.OpenFile(cfg.DBPath+".log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	} else {
		buildinfo.PrintBuildData(os.Stdout)
	}
	log := logging.New(logOut, level, "text")

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.UI == config.UITUI {
		if cfg.RevalidateInterval > 0 {
			go app.Session().StartRevalidationWatcher(ctx, cfg.RevalidateInterval)
		}
		return tui.Run(ctx, app.Session(), app.Screens())
	}

	if err := app.Start(ctx); err != nil {
		return err
	}
	app.Run(ctx)
	return nil
}
