package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/taskkeeper/internal/server"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if cfg.BackupNow {
		if err := app.BackupNow(ctx); err != nil {
			log.Fatalf("backup failed: %v", err)
		}
		return
	}

	app.Run(ctx)

}
