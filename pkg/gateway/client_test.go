package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, srv.URL+"/images", 5*time.Second)
}

func TestGenerateAndSaveStory(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody GenerateStoryRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := GenerateStoryResponse{Story: StoryResponse{ID: 42, Title: strPtr("T")}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	resp, err := client.GenerateAndSaveStory(context.Background(), GenerateStoryRequest{
		Profile: KidProfileRequest{Name: "Mio", Gender: "girl"},
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/stories/generate", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Mio", gotBody.Profile.Name)
	assert.Equal(t, int64(42), resp.Story.ID)
}

func TestUpdatePanelImageAddressesByOrder(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody UpdatePanelImageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	err := client.UpdatePanelImage(context.Background(), 42, 3, "QUFBQQ==")

	require.NoError(t, err)
	assert.Equal(t, "/api/stories/42/panels/3", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "QUFBQQ==", gotBody.ImageBase64)
}

// 非 2xx 応答の detail はユーザーへそのまま届くこと。
func TestAPIErrorDetailSurfacesVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Story generation failed"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.GenerateAndSaveStory(context.Background(), GenerateStoryRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Story generation failed")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Story generation failed", apiErr.Detail)
}

func TestAPIErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.GetStory(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
}

func TestDeleteStorySendsDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	require.NoError(t, client.DeleteStory(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/stories/9", gotPath)
}

func TestUpdateStoryPanelsCarriesUnlockFlag(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody StoryUpdateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(StoryResponse{ID: 5, IsUnlocked: true})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	resp, err := client.UpdateStoryPanels(context.Background(), 5, StoryUpdateRequest{
		IsUnlocked: true,
		Panels: []PanelRequest{
			{PanelOrder: 0, Text: "page 1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/stories/5", gotPath)
	assert.True(t, gotBody.IsUnlocked)
	require.Len(t, gotBody.Panels, 1)
	assert.True(t, resp.IsUnlocked)
}

func TestHealthLivesAtRoot(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/health", gotPath, "ヘルスチェックが /api 配下に生えている")
	assert.Equal(t, "ok", resp.Status)
}

func TestResolveImageRef(t *testing.T) {
	client := NewClient("http://localhost:8000", "http://localhost:8000/images", 0)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"空参照は空のまま", "", ""},
		{"素のファイル名はベースURLで解決", "panel_1.png", "http://localhost:8000/images/panel_1.png"},
		{"絶対URLは素通し", "https://cdn.example.com/p.png", "https://cdn.example.com/p.png"},
		{"data URL は素通し", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.ResolveImageRef(tt.ref))
		})
	}
}
