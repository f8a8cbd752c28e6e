package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/memoradmin/internal/buildinfo"
	"github.com/dmitrijs2005/memoradmin/internal/client/cli"
	"github.com/dmitrijs2005/memoradmin/internal/client/config"
	"github.com/dmitrijs2005/memoradmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger, flush := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	defer flush()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
