package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// CreateStory はプロフィールとパネルを持つストーリーを新規保存します。
func (c *Client) CreateStory(ctx context.Context, req StoryCreateRequest) (*StoryResponse, error) {
	var resp StoryResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/stories", req, &resp); err != nil {
		return nil, fmt.Errorf("ストーリーの保存に失敗しました: %w", err)
	}
	return &resp, nil
}

// ListStories は保存済みストーリーの要約一覧を返します。
func (c *Client) ListStories(ctx context.Context) ([]StoryListItem, error) {
	var items []StoryListItem
	if err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/stories", nil, &items); err != nil {
		return nil, fmt.Errorf("ストーリー一覧の取得に失敗しました: %w", err)
	}
	return items, nil
}

// GetStory は全パネルを含むストーリー詳細を返します。
func (c *Client) GetStory(ctx context.Context, storyID int64) (*StoryResponse, error) {
	var resp StoryResponse
	path := fmt.Sprintf("%s/stories/%d", apiPrefix, storyID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("ストーリー %d の取得に失敗しました: %w", storyID, err)
	}
	return &resp, nil
}

// UpdateStoryPanels はロック解除フラグとパネル全量を置換更新します。
func (c *Client) UpdateStoryPanels(ctx context.Context, storyID int64, req StoryUpdateRequest) (*StoryResponse, error) {
	var resp StoryResponse
	path := fmt.Sprintf("%s/stories/%d", apiPrefix, storyID)
	if err := c.doJSON(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, fmt.Errorf("ストーリー %d の更新に失敗しました: %w", storyID, err)
	}
	return &resp, nil
}

// UpdatePanelImage は位置アドレスで単一パネルの画像だけを書き換えます。
// パネルは identity ではなく panel_order で特定される点に注意してください。
func (c *Client) UpdatePanelImage(ctx context.Context, storyID int64, panelOrder int, imageBase64 string) error {
	path := fmt.Sprintf("%s/stories/%d/panels/%d", apiPrefix, storyID, panelOrder)
	req := UpdatePanelImageRequest{ImageBase64: imageBase64}
	if err := c.doJSON(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("パネル %d:%d の画像更新に失敗しました: %w", storyID, panelOrder, err)
	}
	return nil
}

// DeleteStory はストーリーと配下のパネルを削除します。
func (c *Client) DeleteStory(ctx context.Context, storyID int64) error {
	path := fmt.Sprintf("%s/stories/%d", apiPrefix, storyID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("ストーリー %d の削除に失敗しました: %w", storyID, err)
	}
	return nil
}

// Health は疎通確認を行います。/health だけは API 接頭辞なしの
// ルート直下に生えています。
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
