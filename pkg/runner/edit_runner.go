package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/store"
)

// PanelImageEditor は、既存パネル画像への指示つき編集を提供する
// バックエンド操作を抽象化します。
type PanelImageEditor interface {
	EditPanelImage(ctx context.Context, req gateway.EditImageRequest) (string, error)
}

// PayloadResolver は、画像フィールドの3形態を編集リクエストに載せられる
// 素の base64 ペイロードへ解決します。
type PayloadResolver interface {
	ResolvePayload(ctx context.Context, raw string) (string, error)
}

// PanelEditRunner は単一パネル画像の編集フローを管理します。
// 編集結果はまずローカルストアへ楽観的に反映され、保存済みストーリーが
// ある場合のみベストエフォートで書き戻されます。
type PanelEditRunner struct {
	resolver PayloadResolver
	editor   PanelImageEditor
	store    *store.StoryStore
	sink     *WritebackSink
	artStyle string
}

// NewPanelEditRunner は依存関係を注入して初期化します。
// sink は nil でもよく、その場合は書き戻しが行われません。
func NewPanelEditRunner(resolver PayloadResolver, editor PanelImageEditor, st *store.StoryStore, sink *WritebackSink, artStyle string) *PanelEditRunner {
	return &PanelEditRunner{
		resolver: resolver,
		editor:   editor,
		store:    st,
		sink:     sink,
		artStyle: artStyle,
	}
}

// Run はパネル1枚を指示に従って編集します。
// 画像を持たないパネルと空の指示は、リモート呼び出し前に拒否されます。
// 編集に失敗した場合、パネルは元の画像のまま変更されません。
func (er *PanelEditRunner) Run(ctx context.Context, panelID, instruction string) (domain.Panel, error) {
	if strings.TrimSpace(instruction) == "" {
		return domain.Panel{}, fmt.Errorf("編集指示が空です")
	}

	story, ok := er.store.Story()
	if !ok {
		return domain.Panel{}, fmt.Errorf("編集対象のストーリーが読み込まれていません")
	}

	panel, ok := story.PanelByID(panelID)
	if !ok {
		return domain.Panel{}, fmt.Errorf("パネルが見つかりません (id: %s)", panelID)
	}
	if !panel.HasImage() {
		return domain.Panel{}, fmt.Errorf("画像が未生成のパネルは編集できません (id: %s)", panelID)
	}

	// 1. 現在の画像を送信可能なペイロードへ解決
	payload, err := er.resolver.ResolvePayload(ctx, panel.ImageURL)
	if err != nil {
		return domain.Panel{}, fmt.Errorf("編集元画像の解決に失敗しました: %w", err)
	}

	// 2. リモート編集
	slog.InfoContext(ctx, "EditRunner: Editing panel image", "panel_id", panelID)
	edited, err := er.editor.EditPanelImage(ctx, gateway.EditImageRequest{
		ImageBase64:    payload,
		OriginalPrompt: panel.ImagePrompt,
		EditPrompt:     instruction,
		CastGuide:      story.CharacterDescription,
		Style:          optStyle(er.artStyle),
	})
	if err != nil {
		return domain.Panel{}, fmt.Errorf("パネル画像の編集に失敗しました: %w", err)
	}

	// 3. ローカルストアへ楽観的に反映
	newURL := domain.InlineImageURL(edited)
	position, ok := er.store.ReplacePanelImage(panelID, newURL)
	if !ok {
		// 編集中にストーリーが差し替わった場合など
		return domain.Panel{}, fmt.Errorf("編集結果の反映先パネルが見つかりません (id: %s)", panelID)
	}

	// 4. 保存済みストーリーがあれば位置指定で書き戻す
	if er.sink != nil {
		if storyID, saved := er.store.SavedStoryID(); saved {
			er.sink.Submit(ctx, storyID, position, edited)
		}
	}

	updated, _ := er.store.Story()
	result, ok := updated.PanelByID(panelID)
	if !ok {
		return domain.Panel{}, fmt.Errorf("編集後のパネルの取得に失敗しました (id: %s)", panelID)
	}
	return result, nil
}

func optStyle(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
