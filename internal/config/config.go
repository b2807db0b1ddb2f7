package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	pkgconfig "github.com/shouni/go-storybook-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultProfileFile = "examples/profile.json" // 生成入力となる子どもプロフィールのJSONパス
	DefaultLocalOutput = "output"                // パブリッシャーで使用するデフォルト保存先なのだ
)

// Config はアプリケーション全体の環境設定（バックエンド接続先など）を保持する構造体なのだ。
type Config struct {
	APIBaseURL   string
	ImageBaseURL string
	ArtStyle     string

	Options Options
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		APIBaseURL:   envutil.GetEnv("STORYBOOK_API_URL", pkgconfig.DefaultAPIBaseURL),
		ImageBaseURL: envutil.GetEnv("STORYBOOK_IMAGE_URL", pkgconfig.DefaultImageBaseURL),
		ArtStyle:     envutil.GetEnv("STORYBOOK_ART_STYLE", pkgconfig.DefaultArtStyle),
	}
	return cfg
}

// ToKitConfig は環境設定と実行時オプションを pkg/config の形へ畳み込むのだ。
func (c *Config) ToKitConfig() pkgconfig.Config {
	kit := pkgconfig.DefaultConfig()
	kit.APIBaseURL = c.APIBaseURL
	kit.ImageBaseURL = c.ImageBaseURL
	kit.ArtStyle = c.ArtStyle
	if c.Options.HTTPTimeout > 0 {
		kit.RequestTimeout = c.Options.HTTPTimeout
	}
	return kit
}

// Options は CLI フラグから渡される実行時のパラメータなのだ。
type Options struct {
	// ソース入力関連
	ProfileFile string // --profile
	StoryID     int64  // --story
	PanelID     string // --panel
	Instruction string // --instruction

	// 生成結果の出力設定
	OutputDir  string // --output-dir
	ScriptOnly bool   // --script-only

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
