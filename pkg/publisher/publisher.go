// Package publisher は、完成したストーリーを絵本のページ順に沿った
// Markdown / HTML として書き出す機能を提供します。
package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-storybook-kit/pkg/asset"
	"github.com/shouni/go-storybook-kit/pkg/book"
	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string   // 生成された storybook.md のパス
	HTMLPath     string   // 生成された HTML のパス
	ImagePaths   []string // 保存された全画像のパスリスト
}

const (
	placeholder     = "placeholder.png"
	closingText     = "The End"
	coverImageKey   = -1
	frontCoverLabel = "Front Cover"
	backCoverLabel  = "Back Cover"
)

// StorybookPublisher は成果物の永続化とフォーマット変換を担います。
type StorybookPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewStorybookPublisher は出力先と HTML 変換ランナーを注入して初期化します。
// htmlRunner が nil の場合、HTML 変換はスキップされます。
func NewStorybookPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *StorybookPublisher {
	return &StorybookPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は画像の保存、Markdownの構築、HTML変換を一括して実行し、
// 生成されたファイル情報を返却するのだ！
func (p *StorybookPublisher) Publish(ctx context.Context, story domain.Story, opts Options) (PublishResult, error) {
	result := PublishResult{}

	// 1. 出力パスの解決
	markdown, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultBookName)
	if err != nil {
		return result, err
	}
	result.MarkdownPath = markdown

	imgDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultImageDir)
	if err != nil {
		return result, err
	}

	// 2. 埋め込み画像をファイルへ展開（リモート参照はそのまま使う）
	refs, savedPaths, err := p.saveImages(ctx, story, imgDir)
	if err != nil {
		return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	result.ImagePaths = savedPaths

	// 3. Markdownテキストの構築
	content := p.buildMarkdown(story, refs)

	// 4. Markdownファイルの書き出し
	if err := p.writer.Write(ctx, markdown, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	// 5. HTML変換と保存
	if p.htmlRunner != nil {
		slog.Info("Converting to storybook HTML", "title", story.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, story.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdown, filepath.Ext(markdown)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// BuildMarkdown は保存処理を行わず、構造体から Markdown 文字列のみを生成して返却します。
// 画像は構造体内の参照（data URL やリモートURL）をそのまま使用します。
func (p *StorybookPublisher) BuildMarkdown(story domain.Story) string {
	return p.buildMarkdown(story, nil)
}

// saveImages は埋め込み済みの画像ペイロードをファイルへ展開します。
// 返り値の refs はパネル番号から Markdown 参照先へのマップです
// (coverImageKey は表紙)。リモート参照はダウンロードせず URL のまま使います。
func (p *StorybookPublisher) saveImages(ctx context.Context, story domain.Story, baseDir string) (map[int]string, []string, error) {
	refs := make(map[int]string)
	var saved []string

	panelBase, err := asset.ResolveOutputPath(baseDir, asset.DefaultPanelFileName)
	if err != nil {
		return nil, nil, err
	}

	write := func(key int, raw, fullPath string) error {
		src := domain.ParseImageSource(raw)
		switch src.Kind {
		case domain.ImageKindRemote:
			refs[key] = src.URL
			return nil
		case domain.ImageKindInline, domain.ImageKindBare:
			data, err := base64.StdEncoding.DecodeString(src.Payload)
			if err != nil {
				return fmt.Errorf("画像ペイロードのデコードに失敗しました (%s): %w", fullPath, err)
			}
			if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), "image/png"); err != nil {
				return fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
			}
			saved = append(saved, fullPath)
			refs[key] = path.Join(asset.DefaultImageDir, filepath.Base(fullPath))
			return nil
		default:
			return nil
		}
	}

	coverPath, err := asset.ResolveOutputPath(baseDir, asset.DefaultCoverFileName)
	if err != nil {
		return nil, nil, err
	}
	if err := write(coverImageKey, story.CoverImageURL, coverPath); err != nil {
		return nil, nil, err
	}
	for i, panel := range story.Panels {
		panelPath, err := asset.GenerateIndexedPath(panelBase, i+1)
		if err != nil {
			return nil, nil, fmt.Errorf("パネル %d の出力パス生成に失敗しました: %w", i+1, err)
		}
		if err := write(i, panel.ImageURL, panelPath); err != nil {
			return nil, nil, err
		}
	}
	return refs, saved, nil
}

// buildMarkdown は絵本のページ順（表紙・見開き・裏表紙）に沿って
// Markdown を構築します。refs が nil の場合は構造体内の参照をそのまま使います。
func (p *StorybookPublisher) buildMarkdown(story domain.Story, refs map[int]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", story.Title))

	for _, state := range book.Walk(len(story.Panels)) {
		switch state.Role {
		case book.RoleFrontCover:
			sb.WriteString(fmt.Sprintf("## %s\n\n", frontCoverLabel))
			sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", story.Title, p.imageRef(story, refs, coverImageKey)))
		case book.RoleBackCover:
			sb.WriteString(fmt.Sprintf("## %s\n\n", backCoverLabel))
		case book.RoleSpread:
			sb.WriteString(fmt.Sprintf("## Spread %d\n\n", state.Index))
			p.writeSlot(&sb, story, refs, state.Left)
			p.writeSlot(&sb, story, refs, state.Right)
		}
	}
	return sb.String()
}

// writeSlot は見開きの片側1スロット分を書き出します。
func (p *StorybookPublisher) writeSlot(sb *strings.Builder, story domain.Story, refs map[int]string, slot book.Slot) {
	switch slot.Kind {
	case book.SlotForeword:
		sb.WriteString(fmt.Sprintf("*%s*\n\n", story.Foreword))
	case book.SlotClosing:
		sb.WriteString(fmt.Sprintf("*%s*\n\n", closingText))
	case book.SlotPanel:
		if slot.PanelIndex < 0 || slot.PanelIndex >= len(story.Panels) {
			return
		}
		panel := story.Panels[slot.PanelIndex]
		sb.WriteString(fmt.Sprintf("![Panel %d](%s)\n\n", slot.PanelIndex+1, p.imageRef(story, refs, slot.PanelIndex)))
		if panel.Text != "" {
			sb.WriteString(panel.Text + "\n\n")
		}
	}
}

// imageRef は保存済みの参照、なければ構造体内の参照、それも無ければ
// プレースホルダーを返します。
func (p *StorybookPublisher) imageRef(story domain.Story, refs map[int]string, key int) string {
	if ref, ok := refs[key]; ok {
		return ref
	}
	raw := story.CoverImageURL
	if key >= 0 && key < len(story.Panels) {
		raw = story.Panels[key].ImageURL
	}
	if raw == "" {
		return placeholder
	}
	return raw
}
