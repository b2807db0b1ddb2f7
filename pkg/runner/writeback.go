package runner

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// PanelImageWriter は、保存済みストーリーの特定位置のパネル画像を
// 差し替える書き戻し操作を抽象化するのだ。
type PanelImageWriter interface {
	UpdatePanelImage(ctx context.Context, storyID int64, panelOrder int, imageBase64 string) error
}

// WritebackSink は編集結果のベストエフォート書き戻しを束ねるのだ。
// 書き戻しの失敗はローカルの編集結果に影響しない: ログと失敗カウントに
// 記録するだけで、巻き戻しや自動リトライは行わない。
type WritebackSink struct {
	writer PanelImageWriter
	group  *errgroup.Group
	failed atomic.Int64
}

// NewWritebackSink は並列上限つきの書き戻しシンクを生成するのだ。
// parallel が 0 以下の場合は直列実行になる。
func NewWritebackSink(writer PanelImageWriter, parallel int) *WritebackSink {
	if parallel <= 0 {
		parallel = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(parallel)
	return &WritebackSink{
		writer: writer,
		group:  g,
	}
}

// Submit は書き戻しを1件投入するのだ。呼び出しはすぐ戻り、
// 実際の送信はバックグラウンドで行われる。
func (s *WritebackSink) Submit(ctx context.Context, storyID int64, panelOrder int, imageBase64 string) {
	s.group.Go(func() error {
		if err := s.writer.UpdatePanelImage(ctx, storyID, panelOrder, imageBase64); err != nil {
			s.failed.Add(1)
			slog.WarnContext(ctx, "パネル画像の書き戻しに失敗しました",
				"story_id", storyID,
				"panel_order", panelOrder,
				"error", err,
			)
		}
		// 他の書き戻しを巻き込まないよう、失敗してもグループには伝播させない
		return nil
	})
}

// Flush は投入済みの書き戻しが全て完了するのを待ち、失敗件数を返すのだ。
func (s *WritebackSink) Flush() int64 {
	_ = s.group.Wait()
	return s.failed.Load()
}
