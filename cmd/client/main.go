package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/taskkeeper/internal/client/cli"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	if err := cli.Execute(ctx, cfg); err != nil {
		stop()
		os.Exit(1)
	}

}
