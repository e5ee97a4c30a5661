package handlers

import (
	"fmt"
	"os"

	"github.com/ontheotherocean/music-news-bot/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "musicnews",
		Short: "Музыкальный эксперт: вопросы о музыке со ссылками на источники",
		Long: `musicnews — музыкальный ассистент.

Отвечает на вопросы о музыке, при необходимости выполняет поиск по ведущим
музыкальным изданиям и цитирует только найденные источники.

Примеры:
  musicnews ask "Новые альбомы этой недели"
  musicnews news
  musicnews chat`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .musicnews.yaml)")

	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewNewsCmd())
	rootCmd.AddCommand(NewChatCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
