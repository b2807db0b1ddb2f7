package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"
)

// editCmd は、保存済みストーリーのパネル画像1枚を編集するのだ。
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "パネル画像1枚を指示に従って描き直すのだ。",
	Long: `指定したストーリーの指定位置のパネル画像を、編集指示に従って
描き直すのだ。結果は手元にすぐ反映され、バックエンドへの書き戻しは
ベストエフォートで行われるのだよ。他のパネルには一切触れないのだ。`,
	RunE: editCommand,
}

func editCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.PanelID == "" {
		return fmt.Errorf("編集対象パネル（--panel）を指定してほしいのだ")
	}
	if opts.Instruction == "" {
		return fmt.Errorf("編集指示（--instruction）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("パネル編集を開始するのだ！",
		"story_id", opts.StoryID,
		"panel", opts.PanelID)

	if err := pipeline.ExecuteEdit(ctx, cfg); err != nil {
		return fmt.Errorf("パネル編集中にエラーが発生したのだ: %w", err)
	}

	slog.Info("パネル編集が完了したのだ！")
	return nil
}
