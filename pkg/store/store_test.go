package store

import (
	"testing"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

func sampleStory() domain.Story {
	return domain.Story{
		Title: "The Mint Rocket",
		Panels: []domain.Panel{
			{ID: "p0", Text: "one", ImageURL: "u0"},
			{ID: "p1", Text: "two", ImageURL: "u1"},
			{ID: "p2", Text: "three", ImageURL: "u2"},
		},
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := New()

	t.Run("空のストアはストーリーを返さない", func(t *testing.T) {
		if _, ok := s.Story(); ok {
			t.Error("空のストアから Story が返りました")
		}
		if _, ok := s.SavedStoryID(); ok {
			t.Error("空のストアから SavedStoryID が返りました")
		}
	})

	t.Run("SetStory はストーリーと識別子を不可分に設定する", func(t *testing.T) {
		s.SetStory(sampleStory(), 42)

		story, ok := s.Story()
		if !ok || story.Title != "The Mint Rocket" {
			t.Fatalf("SetStory 後の取得に失敗しました: %v, %v", story, ok)
		}
		id, ok := s.SavedStoryID()
		if !ok || id != 42 {
			t.Errorf("SavedStoryID: 期待値 42, 実際の値 %d (%v)", id, ok)
		}
	})

	t.Run("Clear で初期状態に戻る", func(t *testing.T) {
		s.Clear()
		if _, ok := s.Story(); ok {
			t.Error("Clear 後にストーリーが残っています")
		}
	})
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.SetStory(sampleStory(), 1)

	snap, _ := s.Story()
	snap.Panels[0].ImageURL = "mutated"

	fresh, _ := s.Story()
	if fresh.Panels[0].ImageURL != "u0" {
		t.Error("スナップショットへの変更がストア内部に波及しています")
	}
}

func TestReplacePanelImage(t *testing.T) {
	s := New()
	s.SetStory(sampleStory(), 1)

	t.Run("識別子から現在位置を解決して置換する", func(t *testing.T) {
		pos, ok := s.ReplacePanelImage("p1", "data:image/png;base64,TkVX")
		if !ok || pos != 1 {
			t.Fatalf("期待値 (1, true), 実際の値 (%d, %v)", pos, ok)
		}

		story, _ := s.Story()
		if story.Panels[1].ImageURL != "data:image/png;base64,TkVX" {
			t.Errorf("画像が置換されていません: %q", story.Panels[1].ImageURL)
		}
		if story.Panels[0].ImageURL != "u0" || story.Panels[2].ImageURL != "u2" {
			t.Error("他パネルの画像が巻き添えで変更されています")
		}
	})

	t.Run("存在しない識別子は失敗する", func(t *testing.T) {
		if _, ok := s.ReplacePanelImage("missing", "x"); ok {
			t.Error("存在しないパネルの置換が成功扱いになりました")
		}
	})

	t.Run("ストーリー未設定なら失敗する", func(t *testing.T) {
		empty := New()
		if _, ok := empty.ReplacePanelImage("p0", "x"); ok {
			t.Error("空ストアでの置換が成功扱いになりました")
		}
	})
}
