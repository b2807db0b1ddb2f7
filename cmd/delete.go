package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// deleteCmd は、保存済みストーリーを1件削除するのだ。
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "保存済みストーリーを削除するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		cfg.Options = opts

		if err := pipeline.ExecuteDelete(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("削除中にエラーが発生したのだ: %w", err)
		}
		return nil
	},
}
