package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ontheotherocean/music-news-bot/internal/assistant"
	"github.com/ontheotherocean/music-news-bot/internal/config"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
	"github.com/ontheotherocean/music-news-bot/internal/render"
	"github.com/spf13/cobra"
)

// NewNewsCmd creates a command that generates the weekly music digest.
func NewNewsCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Дайджест главных музыкальных новостей за неделю",
		Long: `Собирает статьи за последнюю неделю по фиксированному набору запросов
и генерирует ранжированный дайджест самых важных новостей.

Каждый пункт дайджеста содержит ссылку на источник.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNews(save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "сохранить дайджест в markdown-файл")

	return cmd
}

func runNews(save bool) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Println("🎵 Собираю музыкальные новости за неделю...")

	digest, err := engine.WeeklyDigest(context.Background())
	if err != nil {
		if errors.Is(err, assistant.ErrNoNews) {
			fmt.Println("Новостей за последнюю неделю не найдено.")
			return nil
		}
		logger.Error("Failed to generate digest", err)
		return fmt.Errorf("failed to generate digest: %w", err)
	}

	fmt.Println()
	fmt.Println(digest.Content)

	logger.Info("Digest generated",
		"articles", digest.ArticleCount,
		"model", digest.ModelUsed,
	)

	if save {
		path, err := render.WriteDigestToFile(digest, config.Get().Digest.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to save digest: %w", err)
		}
		fmt.Printf("\n💾 Дайджест сохранён: %s\n", path)
	}

	return nil
}
