package domain

import "strings"

// ImageKind は画像フィールドが取り得る表現の種別です。
// 生成直後・保存読込後・編集後で表現が変わるため、文字列の接頭辞判定を
// 呼び出し側に散らばらせず、必ずこのタグ付き表現を経由させます。
type ImageKind int

const (
	// ImageKindNone は画像が未設定（生成中など）であることを示します。
	ImageKindNone ImageKind = iota
	// ImageKindInline は data URL 形式のインライン埋め込み画像です。
	ImageKindInline
	// ImageKindRemote は別途フェッチが必要な参照URLです。
	ImageKindRemote
	// ImageKindBare は接頭辞なしの素の base64 ペイロードです。
	ImageKindBare
)

// ImageSource は画像フィールド1つ分の分類結果です。
type ImageSource struct {
	Kind ImageKind
	// Payload は Inline / Bare のときの base64 ペイロード（接頭辞なし）です。
	Payload string
	// URL は Remote のときのフェッチ先です。
	URL string
}

// ParseImageSource は画像フィールドの生文字列を分類します。
// 分類は冪等です: Bare を何度分類しても Payload は変化しません。
func ParseImageSource(raw string) ImageSource {
	switch {
	case raw == "":
		return ImageSource{Kind: ImageKindNone}
	case strings.HasPrefix(raw, "data:"):
		payload := raw
		if idx := strings.Index(raw, ","); idx >= 0 {
			payload = raw[idx+1:]
		}
		return ImageSource{Kind: ImageKindInline, Payload: payload}
	case isRemoteRef(raw):
		return ImageSource{Kind: ImageKindRemote, URL: raw}
	default:
		return ImageSource{Kind: ImageKindBare, Payload: raw}
	}
}

// InlineImageURL は素の base64 ペイロードを表示可能な data URL に包みます。
func InlineImageURL(payload string) string {
	return "data:image/png;base64," + payload
}

func isRemoteRef(raw string) bool {
	return strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "gs://") ||
		strings.HasPrefix(raw, "/")
}
