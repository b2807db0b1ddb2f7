package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// readCmd は、保存済みストーリーを絵本のページ構成で表示するのだ。
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "保存済みストーリーをページ構成つきで表示するのだ。",
	Long: `指定したストーリーを取得し、表紙・見開き・裏表紙という
絵本のページ状態を順に表示するのだ。まえがきと結びのページも
実際の読書順どおりに並ぶのだよ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		cfg.Options = opts

		if err := pipeline.ExecuteRead(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("ストーリーの表示中にエラーが発生したのだ: %w", err)
		}
		return nil
	},
}
