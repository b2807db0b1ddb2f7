package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// listCmd は、保存済みストーリーの一覧を表示するのだ。
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "保存済みストーリーの一覧を表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		cfg.Options = opts

		if err := pipeline.ExecuteList(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("一覧の取得中にエラーが発生したのだ: %w", err)
		}
		return nil
	},
}
