package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/beaverchoice/fulfillment-backend/internal/app"
)

// Replays the seeded request history through the pipeline and writes one
// CSV result row per request.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	outPath := "test_results.csv"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	out, err := os.Create(outPath)
	if err != nil {
		application.Log.Error("Failed to create results file", "path", outPath, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := application.Services.Simulation.Run(context.Background(), out); err != nil {
		application.Log.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
	application.Log.Info("Simulation results written", "path", outPath)
}
