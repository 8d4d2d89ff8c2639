package main

import (
	"fmt"
	"os"

	"sjsage522/storecrawler/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
