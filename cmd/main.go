package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vitals-cli/vitals/internal/cmd"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
