// Package store は、表示中のストーリー1件とその保存済み識別子を保持する
// セッション内の唯一の真実の置き場です。変更はストーリー全体または
// パネル全体の置換に限定し、読み手には常にスナップショットを返します。
package store

import (
	"sync"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// StoryStore は生きている Story を高々1件と、最初の保存成功以降に
// 確定する SavedStoryID を保持します。変更経路はオーケストレーター
// だけに限定する想定です。
type StoryStore struct {
	mu      sync.RWMutex
	story   *domain.Story
	savedID int64
	saved   bool
}

// New は空のストアを返します。
func New() *StoryStore {
	return &StoryStore{}
}

// SetStory は正規化済みストーリーと保存済み識別子を不可分に差し替えます。
// 生成オーケストレーターの成功時にのみ呼ばれます。
func (s *StoryStore) SetStory(story domain.Story, savedID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := story.Clone()
	s.story = &cloned
	s.savedID = savedID
	s.saved = true
}

// Story は現在のストーリーの深いスナップショットを返します。
// 非同期のオーケストレーター呼び出し完了後に内容が変わっている
// 可能性があるため、読み手はスナップショットの不変性を仮定できません。
func (s *StoryStore) Story() (domain.Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.story == nil {
		return domain.Story{}, false
	}
	return s.story.Clone(), true
}

// SavedStoryID は保存済み識別子を返します。最初の保存成功までは
// 第2戻り値が false です。
func (s *StoryStore) SavedStoryID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedID, s.saved
}

// ReplacePanelImage は識別子で特定したパネルの画像だけを置換し、
// そのパネルの現在位置を返します。位置は永続化の書き込み先アドレス
// として使われるため、置換と同じクリティカルセクション内で解決します。
func (s *StoryStore) ReplacePanelImage(panelID, imageURL string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.story == nil {
		return -1, false
	}
	idx := s.story.PanelIndexByID(panelID)
	if idx < 0 {
		return -1, false
	}
	s.story.Panels[idx].ImageURL = imageURL
	s.story.Panels[idx].IsGenerating = false
	return idx, true
}

// ReplacePanel はパネル全体を識別子一致で置き換えます。
func (s *StoryStore) ReplacePanel(panel domain.Panel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.story == nil {
		return false
	}
	idx := s.story.PanelIndexByID(panel.ID)
	if idx < 0 {
		return false
	}
	s.story.Panels[idx] = panel
	return true
}

// Clear はストーリーと識別子を破棄し、別のストーリーへ移る前の
// 初期状態に戻します。
func (s *StoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.story = nil
	s.savedID = 0
	s.saved = false
}
