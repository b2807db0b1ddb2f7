// Package asset は、パネル画像の3形態（インライン埋め込み・リモート参照・
// 素のペイロード）を転送可能な base64 ペイロードへ解決する機能と、
// エクスポート時の出力パス計算を担います。
package asset

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/shouni/go-http-kit/httpkit"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// ImageCacher はフェッチ済み画像バイト列のキャッシュ操作を抽象化する
// インターフェースです。go-cache がそのまま適合します。
type ImageCacher interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, d time.Duration)
}

// Resolver は画像フィールドの生文字列を編集リクエストに載せられる
// 素の base64 ペイロードへ解決します。リモート参照のフェッチは
// キャッシュと singleflight で重複排除されます。
type Resolver struct {
	httpClient httpkit.HTTPClient
	cache      ImageCacher
	cacheTTL   time.Duration
	fetchGroup singleflight.Group
}

// NewResolver は依存関係を注入して Resolver を生成します。
func NewResolver(httpClient httpkit.HTTPClient, cache ImageCacher, cacheTTL time.Duration) (*Resolver, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache は必須です")
	}
	return &Resolver{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}, nil
}

// ResolvePayload は画像フィールドを素の base64 ペイロードへ解決します。
//   - インライン埋め込み: 接頭辞を剥がしてペイロードをそのまま返す
//   - リモート参照: バイト列をフェッチして base64 エンコードする
//   - 素のペイロード: 無変換で返す（この経路は冪等です）
//
// 未設定の画像はエラーです。呼び出し前に弾くのが本来の契約ですが、
// ここでも防壁として検査します。
func (r *Resolver) ResolvePayload(ctx context.Context, raw string) (string, error) {
	src := domain.ParseImageSource(raw)
	switch src.Kind {
	case domain.ImageKindInline, domain.ImageKindBare:
		return src.Payload, nil
	case domain.ImageKindRemote:
		data, err := r.fetchBytes(ctx, src.URL)
		if err != nil {
			return "", fmt.Errorf("参照画像の取得に失敗しました (%s): %w", src.URL, err)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("画像が設定されていません")
	}
}

// fetchBytes はキャッシュ確認つきでリモート画像を取得します。
// 同一URLへの並行フェッチは singleflight で1回に束ねられます。
func (r *Resolver) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	if cached, found := r.cache.Get(url); found {
		if data, ok := cached.([]byte); ok {
			return data, nil
		}
	}

	val, err, _ := r.fetchGroup.Do(url, func() (interface{}, error) {
		if cached, found := r.cache.Get(url); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
		}
		data, fetchErr := r.httpClient.FetchBytes(ctx, url)
		if fetchErr != nil {
			return nil, fetchErr
		}
		r.cache.Set(url, data, r.cacheTTL)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("singleflight から想定外の型が返りました: %T", val)
	}
	return data, nil
}
