package main

import (
	"context"
	"log"

	"evergreen/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (durable stores, ranking backend, dispatcher).
// 3) Serve HTTP.
func main() {
	log.Println("evergreen api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("evergreen api stopped with error: %v", err)
	}
}
