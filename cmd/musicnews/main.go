package main

import (
	"fmt"
	"os"

	"github.com/ontheotherocean/music-news-bot/cmd/handlers"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
)

func main() {
	logger.Init()

	if err := handlers.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
