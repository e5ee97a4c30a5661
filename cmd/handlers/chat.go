package handlers

import (
	"github.com/ontheotherocean/music-news-bot/internal/tui"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the interactive chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Интерактивная чат-сессия с музыкальным ассистентом",
		Long: `Запускает интерактивный чат в терминале.

Каждое сообщение обрабатывается независимо: ассистент решает, нужен ли
поиск, собирает свежие статьи и отвечает со ссылками на источники.

Выход: Ctrl+C или Esc.`,
		RunE: runChat,
	}
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	return tui.Run(engine)
}
