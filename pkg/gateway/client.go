package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// apiPrefix は API ルートの接頭辞です。/health と /images だけは
// バックエンドのルート直下に生えています。
const apiPrefix = "/api"

// APIError はゲートウェイからの非 2xx 応答です。detail はユーザーに
// そのまま提示するため、改変せずに保持します。
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("ゲートウェイがステータス %d を返しました", e.StatusCode)
}

// Client は永続化・生成バックエンドの REST クライアントです。
// ゲートウェイは汎用の GET/POST だけでなく PATCH / DELETE も要求するため、
// *http.Client を直接保持します。
type Client struct {
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
}

// NewClient はバックエンドのルートURL（例: http://localhost:8000）と
// 画像参照の解決に使うベースURL（例: http://localhost:8000/images）から
// クライアントを作ります。
func NewClient(baseURL, imageBaseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		imageBaseURL: strings.TrimSuffix(imageBaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// ResolveImageRef はゲートウェイが返す不透明な画像参照を取得可能なURLに
// 解決します。完全修飾済み（絶対URL・data URL）の値は素通しします。
func (c *Client) ResolveImageRef(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "data:") {
		return ref
	}
	return c.imageBaseURL + "/" + strings.TrimPrefix(ref, "/")
}

// doJSON は単一のリクエスト/レスポンス往復を実行します。
// out が nil の場合はボディを読み捨てます（204 応答など）。
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ゲートウェイへの接続に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンスの読み取りに失敗しました: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("レスポンスのデコードに失敗しました (%s %s): %w", method, path, err)
	}
	return nil
}

// parseAPIError は FastAPI 形式の {"detail": "..."} を取り出します。
// detail が構造化されている場合やボディが JSON でない場合は
// ステータスコードのみのエラーに落とします。
func parseAPIError(status int, raw []byte) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	}
	return apiErr
}
