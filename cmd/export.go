package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// exportCmd は、保存済みストーリーを Markdown / HTML として書き出すのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "保存済みストーリーを絵本ファイルとして書き出すのだ。",
	Long: `指定したストーリーを取得し、ページ順に並べた Markdown と
閲覧用 HTML を出力するのだ。埋め込み画像はファイルに展開され、
リモート参照の画像はURLのまま参照されるのだよ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		cfg.Options = opts

		slog.Info("絵本の書き出しを開始するのだ！", "story_id", opts.StoryID, "output", opts.OutputDir)

		if err := pipeline.ExecuteExport(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("書き出し中にエラーが発生したのだ: %w", err)
		}
		return nil
	},
}
