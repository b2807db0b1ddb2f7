package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// generateCmd は、プロフィールからの絵本生成を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "プロフィールから絵本を生成して保存するのだ。",
	Long: `子どものプロフィールJSONを読み込み、物語の台本と挿絵を生成して
バックエンドに保存するのだ。--script-only を付けると画像を作らず
台本JSONだけを出力するのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.ProfileFile == "" {
		return fmt.Errorf("プロフィール（--profile）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("絵本生成パイプラインを起動するのだ！",
		"profile", opts.ProfileFile,
		"script_only", opts.ScriptOnly,
		"output", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.ExecuteGenerate(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
