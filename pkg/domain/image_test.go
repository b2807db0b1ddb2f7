package domain

import "testing"

func TestParseImageSource(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantKind    ImageKind
		wantPayload string
		wantURL     string
	}{
		{"空文字列は None", "", ImageKindNone, "", ""},
		{"data URL は Inline でペイロードを抽出", "data:image/png;base64,AAAA", ImageKindInline, "AAAA", ""},
		{"カンマなしの data URL も落ちない", "data:image/png", ImageKindInline, "data:image/png", ""},
		{"http URL は Remote", "http://localhost:8000/images/panel_1.png", ImageKindRemote, "", "http://localhost:8000/images/panel_1.png"},
		{"https URL は Remote", "https://example.com/cover.png", ImageKindRemote, "", "https://example.com/cover.png"},
		{"gs スキームも Remote", "gs://bucket/panel.png", ImageKindRemote, "", "gs://bucket/panel.png"},
		{"絶対パスは Remote", "/images/panel_3.png", ImageKindRemote, "", "/images/panel_3.png"},
		{"素の base64 は Bare", "iVBORw0KGgoAAAANSUhEUg", ImageKindBare, "iVBORw0KGgoAAAANSUhEUg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseImageSource(tt.raw)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind: 期待値 %v, 実際の値 %v", tt.wantKind, got.Kind)
			}
			if got.Payload != tt.wantPayload {
				t.Errorf("Payload: 期待値 %q, 実際の値 %q", tt.wantPayload, got.Payload)
			}
			if got.URL != tt.wantURL {
				t.Errorf("URL: 期待値 %q, 実際の値 %q", tt.wantURL, got.URL)
			}
		})
	}
}

func TestParseImageSourceIdempotence(t *testing.T) {
	// Bare ペイロードは何度分類しても同じペイロードのままであること
	const bare = "iVBORw0KGgoAAAANSUhEUg"

	first := ParseImageSource(bare)
	second := ParseImageSource(first.Payload)

	if second.Kind != ImageKindBare {
		t.Fatalf("2回目の分類で Kind が変わりました: %v", second.Kind)
	}
	if second.Payload != bare {
		t.Errorf("ペイロードが冪等ではありません: 期待値 %q, 実際の値 %q", bare, second.Payload)
	}
}
