package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"stock-sentiment-analyzer/internal/cli"
	"stock-sentiment-analyzer/internal/logger"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	defer logger.Shutdown(context.Background())

	if err := cli.NewRootCmd().Execute(); err != nil {
		logger.Error(context.Background(), "Command failed", "error", err)
		os.Exit(1)
	}
}
