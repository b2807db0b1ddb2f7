package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// GenerateAndSaveStory は「プロフィール入力→完成した保存済みストーリー出力」
// の複合操作を1回の論理呼び出しとして実行します。台本生成・全パネルの
// 画像生成・永続化はすべてサーバ側で完結し、途中経過は観測できません。
// 失敗時は部分的な結果を返さず、単一のエラー境界として扱えます。
func (c *Client) GenerateAndSaveStory(ctx context.Context, req GenerateStoryRequest) (*GenerateStoryResponse, error) {
	var resp GenerateStoryResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/stories/generate", req, &resp); err != nil {
		return nil, fmt.Errorf("ストーリー生成に失敗しました: %w", err)
	}
	return &resp, nil
}

// GenerateStoryScript は台本（タイトル・前書き・キャラクター記述・
// カバープロンプト・パネル列）のみを生成します。画像は生成されません。
func (c *Client) GenerateStoryScript(ctx context.Context, req ScriptRequest) (*ScriptResponse, error) {
	var resp ScriptResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/generate/story-script", req, &resp); err != nil {
		return nil, fmt.Errorf("台本生成に失敗しました: %w", err)
	}
	return &resp, nil
}

// GeneratePanelImage はパネル1枚分の画像を生成し、素の base64 を返します。
func (c *Client) GeneratePanelImage(ctx context.Context, req PanelImageRequest) (string, error) {
	var resp ImageResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/generate/panel-image", req, &resp); err != nil {
		return "", fmt.Errorf("パネル画像の生成に失敗しました: %w", err)
	}
	return resp.ImageBase64, nil
}

// EditPanelImage は既存画像に編集指示を適用し、新しい画像の素の base64 を
// 返します。リクエストの画像ペイロードは事前に接頭辞なしへ解決して
// おく必要があります。
func (c *Client) EditPanelImage(ctx context.Context, req EditImageRequest) (string, error) {
	var resp ImageResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/generate/edit-image", req, &resp); err != nil {
		return "", fmt.Errorf("画像編集に失敗しました: %w", err)
	}
	return resp.ImageBase64, nil
}
