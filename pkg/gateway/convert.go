package gateway

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// ToProfileRequest は内部プロフィールをワイヤ形式へ変換します。
// インライン写真は data URL 接頭辞を剥がし、素のペイロードだけを送ります。
func ToProfileRequest(p domain.Profile) KidProfileRequest {
	req := KidProfileRequest{
		Name:          p.Name,
		Gender:        string(p.Gender),
		SkinTone:      p.SkinTone,
		HairColor:     p.HairColor,
		EyeColor:      p.EyeColor,
		FavoriteColor: p.FavoriteColor,
		Dream:         optString(p.Dream),
		Archetype:     optString(p.Archetype),
		ArtStyle:      optString(p.ArtStyle),
	}
	if src := domain.ParseImageSource(p.Photo); src.Payload != "" {
		req.PhotoBase64 = &src.Payload
	}
	return req
}

// ToStory はワイヤ形式のストーリーを内部モデルへ正規化します。
//   - null の任意項目は空文字列に倒す
//   - 画像参照は resolve で取得可能なURLへ解決する
//   - パネルは panel_order 昇順を保証し、不透明な識別子を採番する
//   - 生成完了済みの契約で受け取るため IsGenerating は常に false
//
// resolve には通常 (*Client).ResolveImageRef を渡します。
func ToStory(resp StoryResponse, resolve func(string) string) domain.Story {
	if resolve == nil {
		resolve = func(ref string) string { return ref }
	}

	panels := make([]PanelResponse, len(resp.Panels))
	copy(panels, resp.Panels)
	sort.SliceStable(panels, func(i, j int) bool {
		return panels[i].PanelOrder < panels[j].PanelOrder
	})

	story := domain.Story{
		Title:                derefString(resp.Title),
		Foreword:             derefString(resp.Foreword),
		CharacterDescription: derefString(resp.CharacterDescription),
		CoverImagePrompt:     derefString(resp.CoverImagePrompt),
		CoverImageURL:        resolve(derefString(resp.CoverImageURL)),
		Panels:               make([]domain.Panel, 0, len(panels)),
	}

	for _, p := range panels {
		story.Panels = append(story.Panels, domain.Panel{
			ID:           uuid.NewString(),
			Text:         p.Text,
			ImagePrompt:  derefString(p.ImagePrompt),
			ImageURL:     resolve(derefString(p.ImageURL)),
			IsGenerating: false,
		})
	}
	return story
}

// ToUpdateRequest は内部ストーリーを PATCH /stories/{id} の全置換
// ボディへ戻します。パネルの位置は現在の並び順そのものであり、
// インライン／素のペイロードを持つ画像だけが image_base64 として載ります。
// 参照URLのままの画像はサーバ側が保持しているため送りません。
func ToUpdateRequest(story domain.Story, unlocked bool) StoryUpdateRequest {
	req := StoryUpdateRequest{
		IsUnlocked: unlocked,
		Panels:     make([]PanelRequest, 0, len(story.Panels)),
	}

	if src := domain.ParseImageSource(story.CoverImageURL); src.Kind == domain.ImageKindInline || src.Kind == domain.ImageKindBare {
		req.CoverImageBase64 = &src.Payload
	}

	for i, p := range story.Panels {
		panel := PanelRequest{
			PanelOrder:  i,
			Text:        p.Text,
			ImagePrompt: optString(p.ImagePrompt),
		}
		if src := domain.ParseImageSource(p.ImageURL); src.Kind == domain.ImageKindInline || src.Kind == domain.ImageKindBare {
			panel.ImageBase64 = &src.Payload
		}
		req.Panels = append(req.Panels, panel)
	}
	return req
}

// ToProfile はワイヤ形式のプロフィールを内部モデルへ戻します。
func ToProfile(resp KidProfileResponse) domain.Profile {
	return domain.Profile{
		Name:          resp.Name,
		Gender:        domain.Gender(resp.Gender),
		SkinTone:      resp.SkinTone,
		HairColor:     resp.HairColor,
		EyeColor:      resp.EyeColor,
		FavoriteColor: resp.FavoriteColor,
		Dream:         derefString(resp.Dream),
		Archetype:     derefString(resp.Archetype),
		ArtStyle:      derefString(resp.ArtStyle),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
