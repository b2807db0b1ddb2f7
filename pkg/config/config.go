package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultAPIBaseURL       = "http://localhost:8000"
	DefaultImageBaseURL     = "http://localhost:8000/images"
	DefaultArtStyle         = "warm watercolor picture-book style, soft pastel palette, gentle rounded character design, storybook illustration, high resolution"
	DefaultRateInterval     = 10 * time.Second
	DefaultRequestTimeout   = 120 * time.Second
	DefaultCacheTTL         = 10 * time.Minute
	DefaultWritebackWorkers = 2
)

// Config は Go Storybook Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- Backend Settings ---
	APIBaseURL   string // 生成・永続化バックエンドのルートURL
	ImageBaseURL string // 素のファイル名を解決するための画像配信URL

	// --- Generation Settings ---
	ArtStyle     string
	RateInterval time.Duration

	// --- Edit Settings ---
	WritebackWorkers int // 書き戻しの並列上限
	CacheTTL         time.Duration

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		APIBaseURL:       DefaultAPIBaseURL,
		ImageBaseURL:     DefaultImageBaseURL,
		ArtStyle:         DefaultArtStyle,
		RateInterval:     DefaultRateInterval,
		RequestTimeout:   DefaultRequestTimeout,
		CacheTTL:         DefaultCacheTTL,
		WritebackWorkers: DefaultWritebackWorkers,
	}
}
