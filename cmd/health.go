package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// healthCmd は、バックエンドの死活確認をするのだ。
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "バックエンドの稼働状態を確認するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		cfg.Options = opts

		if err := pipeline.ExecuteHealth(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("死活確認に失敗したのだ: %w", err)
		}
		return nil
	},
}
