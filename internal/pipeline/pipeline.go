package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-storybook-kit/internal/builder"
	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/book"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/workflow"
)

// ExecuteGenerate は、プロフィールJSONを読み込み、ストーリーの生成と保存、
// 成果物のパブリッシュまでを一気通貫で実行するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer flushWriteback(ctx, appCtx)

	profile, err := builder.LoadProfile(ctx, appCtx, cfg.Options.ProfileFile)
	if err != nil {
		return err
	}

	genRunner := builder.BuildGenerateRunner(appCtx)

	// --script-only: 画像を伴わない台本だけを生成して標準出力へ流すのだ
	if cfg.Options.ScriptOnly {
		script, err := genRunner.RunScript(ctx, profile)
		if err != nil {
			return err
		}
		return printJSON(script)
	}

	story, storyID, err := genRunner.Run(ctx, profile)
	if err != nil {
		return err
	}
	slog.Info("ストーリーが保存されたのだ！", "story_id", storyID, "title", story.Title, "panels", len(story.Panels))

	// 生成に成功したらそのままパブリッシュまで進めるのだ
	return publishStory(ctx, appCtx, story)
}

// ExecuteList は保存済みストーリーの一覧を表示するのだ。
func ExecuteList(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	items, err := appCtx.Manager.Gateway().ListStories(ctx)
	if err != nil {
		return fmt.Errorf("ストーリー一覧の取得に失敗しました: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("保存されたストーリーはまだないのだ。")
		return nil
	}
	for _, item := range items {
		title := "(untitled)"
		if item.Title != nil && *item.Title != "" {
			title = *item.Title
		}
		fmt.Printf("%6d  %-40s  %s\n", item.ID, title, item.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// ExecuteRead は保存済みストーリー1件を取得し、絵本のページ状態を
// 順に表示するのだ。
func ExecuteRead(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	story, _, err := loadStory(ctx, appCtx, cfg.Options.StoryID)
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n", story.Title)
	for _, state := range book.Walk(len(story.Panels)) {
		switch state.Role {
		case book.RoleFrontCover:
			fmt.Printf("[%d] 表紙\n", state.Index)
		case book.RoleBackCover:
			fmt.Printf("[%d] 裏表紙\n", state.Index)
		case book.RoleSpread:
			fmt.Printf("[%d] 見開き: %s | %s\n", state.Index, describeSlot(story, state.Left), describeSlot(story, state.Right))
		}
	}
	return nil
}

// ExecuteEdit は保存済みストーリーを読み込み、指定位置のパネル画像を
// 指示に従って編集するのだ。編集結果はローカル反映ののち、ベスト
// エフォートでバックエンドへ書き戻される。
func ExecuteEdit(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer flushWriteback(ctx, appCtx)

	story, storyID, err := loadStory(ctx, appCtx, cfg.Options.StoryID)
	if err != nil {
		return err
	}
	appCtx.Manager.Store().SetStory(story, storyID)

	position, err := strconv.Atoi(cfg.Options.PanelID)
	if err != nil {
		return fmt.Errorf("パネル位置の指定が不正です (0始まりの番号で指定してください): %q", cfg.Options.PanelID)
	}
	if position < 0 || position >= len(story.Panels) {
		return fmt.Errorf("パネル位置 %d が範囲外です (パネル数: %d)", position, len(story.Panels))
	}

	editRunner, err := builder.BuildEditRunner(appCtx)
	if err != nil {
		return err
	}

	panel, err := editRunner.Run(ctx, story.Panels[position].ID, cfg.Options.Instruction)
	if err != nil {
		return err
	}
	slog.Info("パネル画像を差し替えたのだ！", "story_id", storyID, "panel_order", position, "text", panel.Text)
	return nil
}

// ExecuteDelete は保存済みストーリーを1件削除するのだ。
func ExecuteDelete(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := appCtx.Manager.Gateway().DeleteStory(ctx, cfg.Options.StoryID); err != nil {
		return fmt.Errorf("ストーリーの削除に失敗しました: %w", err)
	}
	slog.Info("ストーリーを削除したのだ", "story_id", cfg.Options.StoryID)
	return nil
}

// ExecuteExport は保存済みストーリーを Markdown / HTML として書き出すのだ。
func ExecuteExport(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	story, _, err := loadStory(ctx, appCtx, cfg.Options.StoryID)
	if err != nil {
		return err
	}

	return publishStory(ctx, appCtx, story)
}

// ExecuteHealth はバックエンドの死活を確認するのだ。
func ExecuteHealth(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	resp, err := appCtx.Manager.Gateway().Health(ctx)
	if err != nil {
		return fmt.Errorf("バックエンドに接続できません (%s): %w", cfg.APIBaseURL, err)
	}
	fmt.Printf("status: %s\n", resp.Status)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}

	manager, err := workflowManager(cfg, httpClient, writer)
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, reader, writer, manager)
	return &appCtx, nil
}

// loadStory はゲートウェイからストーリーを取得し、内部表現へ正規化するのだ。
func loadStory(ctx context.Context, appCtx *builder.AppContext, storyID int64) (domain.Story, int64, error) {
	if storyID <= 0 {
		return domain.Story{}, 0, fmt.Errorf("--story でストーリーIDを指定してください")
	}

	client := appCtx.Manager.Gateway()
	resp, err := client.GetStory(ctx, storyID)
	if err != nil {
		return domain.Story{}, 0, fmt.Errorf("ストーリー %d の取得に失敗しました: %w", storyID, err)
	}
	return gateway.ToStory(*resp, client.ResolveImageRef), resp.ID, nil
}

// publishStory は PublishRunner を使って最終成果物を保存するのだ
func publishStory(ctx context.Context, appCtx *builder.AppContext, story domain.Story) error {
	publishRunner, err := builder.BuildPublishRunner(appCtx)
	if err != nil {
		return err
	}

	result, err := publishRunner.Run(ctx, story, appCtx.Options.OutputDir)
	if err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	slog.Info("物語の絵本が完成したのだ！", "markdown", result.MarkdownPath, "html", result.HTMLPath, "images", len(result.ImagePaths))
	return nil
}

// flushWriteback は残っている書き戻しを待ち、失敗があれば警告を出すのだ。
func flushWriteback(ctx context.Context, appCtx *builder.AppContext) {
	if failed := appCtx.Manager.Flush(); failed > 0 {
		slog.WarnContext(ctx, "完了しなかった書き戻しがあるのだ", "failed", failed)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describeSlot(story domain.Story, slot book.Slot) string {
	switch slot.Kind {
	case book.SlotForeword:
		return "まえがき"
	case book.SlotClosing:
		return "むすび"
	case book.SlotPanel:
		if slot.PanelIndex >= 0 && slot.PanelIndex < len(story.Panels) {
			return fmt.Sprintf("パネル%d", slot.PanelIndex+1)
		}
		return "(空)"
	default:
		return "(空)"
	}
}

// workflowManager は kit 設定から共有ワークフローを組み立てるのだ。
func workflowManager(cfg *config.Config, httpClient httpkit.HTTPClient, writer remoteio.OutputWriter) (*workflow.Manager, error) {
	manager, err := workflow.New(cfg.ToKitConfig(), httpClient, writer)
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗したのだ: %w", err)
	}
	return manager, nil
}
