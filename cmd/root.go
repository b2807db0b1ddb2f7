package cmd

import (
	"fmt"
	"net/url"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-storybook-kit/internal/config"
)

// opts は CLI フラグの値を受けるグローバルなオプション置き場なのだ。
var opts config.Options

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ProfileFile, "profile", "f", config.DefaultProfileFile, "子どもプロフィールJSONのパス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().Int64VarP(&opts.StoryID, "story", "s", 0, "操作対象の保存済みストーリーIDなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultLocalOutput, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "バックエンドへのリクエストのタイムアウトなのだ。")

	// --- コマンド固有フラグ ---
	generateCmd.Flags().BoolVar(&opts.ScriptOnly, "script-only", false, "画像生成を行わず、台本JSONだけを出力するのだ。")
	editCmd.Flags().StringVarP(&opts.PanelID, "panel", "p", "", "編集対象パネルの位置（0始まり）なのだ。")
	editCmd.Flags().StringVarP(&opts.Instruction, "instruction", "i", "", "画像への編集指示なのだ。")
}

// preRunAppE は、コマンド実行前に接続先などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// バックエンドURLが壊れているとすべての操作が失敗するため、先に検証するのだ
	rawURL := os.Getenv("STORYBOOK_API_URL")
	if rawURL == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("エラー: 環境変数 STORYBOOK_API_URL の値が不正なのだ: %w", err)
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-storybook-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		listCmd,
		readCmd,
		editCmd,
		deleteCmd,
		exportCmd,
		healthCmd,
	)
}
