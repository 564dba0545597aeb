package main

import (
	"context"
	"log"

	"evergreen/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (queue server, event router, failure log).
// 3) Consume queued events with bounded concurrency.
func main() {
	log.Println("evergreen worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("evergreen worker stopped with error: %v", err)
	}
}
