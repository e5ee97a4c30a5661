package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ontheotherocean/music-news-bot/internal/logger"
	"github.com/spf13/cobra"
)

// NewAskCmd creates a command that answers a single question and exits.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [вопрос]",
		Short: "Задать один вопрос о музыке",
		Long: `Задаёт ассистенту один вопрос и печатает ответ.

Если вопрос требует актуальной информации, ассистент выполнит поиск по
музыкальным изданиям и процитирует найденные источники. Ссылки в ответе
всегда ведут только на реально найденные статьи.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}
	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	logger.Info("Processing question", "length", len(question))

	answer, err := engine.Respond(context.Background(), question)
	if err != nil {
		logger.Error("Failed to generate answer", err)
		return fmt.Errorf("failed to generate answer: %w", err)
	}

	fmt.Println(answer)
	return nil
}
