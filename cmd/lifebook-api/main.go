package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Jseow008/ThePlayBook-sub001/internal/builder"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := builder.Build(ctx)
	if err != nil {
		log.Fatal("Failed to build application: ", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}
