package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Gender は主人公の性別区分です。バックエンドの許容値と一致させています。
type Gender string

const (
	GenderBoy     Gender = "boy"
	GenderGirl    Gender = "girl"
	GenderNeutral Gender = "neutral"
)

// Profile は物語生成の入力となる子どもプロフィールです。
// 生成リクエストに一度渡したら変更しない前提で扱います。
type Profile struct {
	Name          string `json:"name"`
	Gender        Gender `json:"gender"`
	SkinTone      string `json:"skin_tone"`
	HairColor     string `json:"hair_color"`
	EyeColor      string `json:"eye_color"`
	FavoriteColor string `json:"favorite_color"`
	Dream         string `json:"dream,omitempty"`      // 任意: 物語のテーマになる夢
	Archetype     string `json:"archetype,omitempty"`  // 任意: 冒険の型（hero, explorer など）
	ArtStyle      string `json:"art_style,omitempty"`  // 任意: 画風ラベル
	Photo         string `json:"photo,omitempty"`      // 任意: インライン画像（生成入力専用、保存対象外）
}

// Validate は生成リクエストに渡す前の必須項目チェックを行います。
// リモート呼び出しの前に弾くため、ここでの失敗は通信を一切発生させません。
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("プロフィールの名前が空です")
	}
	switch p.Gender {
	case GenderBoy, GenderGirl, GenderNeutral:
	default:
		return fmt.Errorf("性別の指定が不正です: %q", p.Gender)
	}
	for label, v := range map[string]string{
		"skin_tone":      p.SkinTone,
		"hair_color":     p.HairColor,
		"eye_color":      p.EyeColor,
		"favorite_color": p.FavoriteColor,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("パレット項目 %s が空です", label)
		}
	}
	return nil
}

// Panel は物語の1コマ（キャプションと挿絵1枚）を表します。
type Panel struct {
	// ID は正規化時に採番される不透明な識別子です。編集UIからの
	// 逆引きにのみ使い、ゲートウェイへは送信しません。
	ID          string `json:"id"`
	Text        string `json:"text"`
	ImagePrompt string `json:"image_prompt"`
	// ImageURL は生成直後は data URL、保存済みストーリーの読込後は
	// 参照URL、編集直後は素のペイロードになり得ます（3形態）。
	ImageURL string `json:"image_url,omitempty"`
	// IsGenerating は表示用の一時フラグで、永続化されません。
	IsGenerating bool `json:"-"`
}

// HasImage は編集可能な描画済み画像を持つかを返します。
func (p Panel) HasImage() bool {
	return p.ImageURL != ""
}

// Story は生成済みの物語全体です。Panels は読書順そのものであり、
// 生成完了後は件数も順序も不変です。並べ替えを行うと位置アドレスの
// 永続化（PATCH /stories/{id}/panels/{order}）が別のパネルを壊すため、
// 編集はパネル内容の置換に限定します。
type Story struct {
	Title                string  `json:"title"`
	Foreword             string  `json:"foreword"`
	CharacterDescription string  `json:"character_description"`
	CoverImagePrompt     string  `json:"cover_image_prompt"`
	CoverImageURL        string  `json:"cover_image_url,omitempty"`
	Panels               []Panel `json:"panels"`
}

// Clone は Story の深いコピーを返します。ストアのスナップショット返却に使います。
func (s Story) Clone() Story {
	copied := s
	if s.Panels != nil {
		copied.Panels = make([]Panel, len(s.Panels))
		copy(copied.Panels, s.Panels)
	}
	return copied
}

// String はログ向けの短い要約を返します。
func (s Story) String() string {
	return fmt.Sprintf("%s (%d panels)", s.Title, len(s.Panels))
}

// MarshalIndent はデバッグ出力用の整形 JSON を返します。
func (s Story) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
