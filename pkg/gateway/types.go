// Package gateway は、ストーリー永続化・生成バックエンドの REST 契約を
// 話すクライアントです。ワイヤ上の形（snake_case、null許容の任意項目、
// 素のファイル名による画像参照）と内部ドメインモデルの変換もここで行います。
package gateway

import "time"

// KidProfileRequest は POST 系リクエストに埋め込むプロフィールです。
type KidProfileRequest struct {
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	SkinTone      string  `json:"skin_tone"`
	HairColor     string  `json:"hair_color"`
	EyeColor      string  `json:"eye_color"`
	FavoriteColor string  `json:"favorite_color"`
	Dream         *string `json:"dream,omitempty"`
	Archetype     *string `json:"archetype,omitempty"`
	ArtStyle      *string `json:"art_style,omitempty"`
	PhotoBase64   *string `json:"photo_base64,omitempty"`
}

// KidProfileResponse はレスポンスに含まれるプロフィールです。
type KidProfileResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	SkinTone      string    `json:"skin_tone"`
	HairColor     string    `json:"hair_color"`
	EyeColor      string    `json:"eye_color"`
	FavoriteColor string    `json:"favorite_color"`
	Dream         *string   `json:"dream"`
	Archetype     *string   `json:"archetype"`
	ArtStyle      *string   `json:"art_style"`
	CreatedAt     time.Time `json:"created_at"`
}

// PanelRequest は保存・更新リクエスト内のパネル1件です。
// パネルは常に panel_order（位置）でアドレスされます。
type PanelRequest struct {
	PanelOrder  int     `json:"panel_order"`
	Text        string  `json:"text"`
	ImagePrompt *string `json:"image_prompt,omitempty"`
	ImageBase64 *string `json:"image_base64,omitempty"`
}

// PanelResponse はレスポンス内のパネル1件です。image_url は保存済み画像の
// 不透明なファイル名か、すでに完全修飾された参照のどちらかです。
type PanelResponse struct {
	ID          int64   `json:"id"`
	PanelOrder  int     `json:"panel_order"`
	Text        string  `json:"text"`
	ImagePrompt *string `json:"image_prompt"`
	ImageURL    *string `json:"image_url"`
}

// StoryCreateRequest は POST /stories のボディです。
type StoryCreateRequest struct {
	Profile              KidProfileRequest `json:"profile"`
	Title                *string           `json:"title,omitempty"`
	Foreword             *string           `json:"foreword,omitempty"`
	CharacterDescription *string           `json:"character_description,omitempty"`
	CoverImagePrompt     *string           `json:"cover_image_prompt,omitempty"`
	CoverImageBase64     *string           `json:"cover_image_base64,omitempty"`
	Panels               []PanelRequest    `json:"panels"`
}

// StoryUpdateRequest は PATCH /stories/{id} のボディです。
// パネルリストは全置換で扱われます。
type StoryUpdateRequest struct {
	IsUnlocked       bool           `json:"is_unlocked"`
	Panels           []PanelRequest `json:"panels"`
	CoverImageBase64 *string        `json:"cover_image_base64,omitempty"`
}

// UpdatePanelImageRequest は PATCH /stories/{id}/panels/{order} のボディです。
type UpdatePanelImageRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// StoryResponse は GET /stories/{id} などが返すストーリー全体です。
type StoryResponse struct {
	ID                   int64              `json:"id"`
	Title                *string            `json:"title"`
	Foreword             *string            `json:"foreword"`
	CharacterDescription *string            `json:"character_description"`
	CoverImagePrompt     *string            `json:"cover_image_prompt"`
	CoverImageURL        *string            `json:"cover_image_url"`
	IsUnlocked           bool               `json:"is_unlocked"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	Profile              KidProfileResponse `json:"profile"`
	Panels               []PanelResponse    `json:"panels"`
}

// StoryListItem は GET /stories が返す一覧用の要約です。
type StoryListItem struct {
	ID            int64              `json:"id"`
	Title         *string            `json:"title"`
	CoverImageURL *string            `json:"cover_image_url"`
	IsUnlocked    bool               `json:"is_unlocked"`
	CreatedAt     time.Time          `json:"created_at"`
	Profile       KidProfileResponse `json:"profile"`
}

// GenerateStoryRequest は POST /stories/generate（台本生成＋全画像生成＋保存を
// サーバ側で一括実行する複合操作）のボディです。
type GenerateStoryRequest struct {
	Profile KidProfileRequest `json:"profile"`
}

// GenerateStoryResponse は保存済みストーリーを包んで返します。
type GenerateStoryResponse struct {
	Story StoryResponse `json:"story"`
}

// ScriptRequest は POST /generate/story-script のボディです。
type ScriptRequest struct {
	Profile KidProfileRequest `json:"profile"`
}

// ScriptPanel は生成された台本のパネル1件です。台本系レスポンスのキーは
// 保存系と異なり camelCase であることに注意してください。
type ScriptPanel struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
}

// ScriptResponse は生成された台本（画像なし）です。
type ScriptResponse struct {
	Title                string        `json:"title"`
	Foreword             string        `json:"foreword"`
	CharacterDescription string        `json:"characterDescription"`
	CoverImagePrompt     string        `json:"coverImagePrompt"`
	Panels               []ScriptPanel `json:"panels"`
}

// PanelImageRequest は POST /generate/panel-image のボディです。
type PanelImageRequest struct {
	Prompt    string  `json:"prompt"`
	CastGuide string  `json:"cast_guide"`
	Style     *string `json:"style,omitempty"`
}

// EditImageRequest は POST /generate/edit-image のボディです。
// ImageBase64 は接頭辞なしの素のペイロードでなければなりません。
type EditImageRequest struct {
	ImageBase64    string  `json:"image_base64"`
	OriginalPrompt string  `json:"original_prompt"`
	EditPrompt     string  `json:"edit_prompt"`
	CastGuide      string  `json:"cast_guide"`
	Style          *string `json:"style,omitempty"`
}

// ImageResponse は画像生成・編集エンドポイント共通のレスポンスです。
type ImageResponse struct {
	ImageBase64 string `json:"image_base64"`
}

// HealthResponse は GET /health のレスポンスです。
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
