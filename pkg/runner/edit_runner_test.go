package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/store"
)

// --- Mocks ---

type mockEditor struct {
	calls   int
	lastReq gateway.EditImageRequest
	result  string
	err     error
}

func (m *mockEditor) EditPanelImage(ctx context.Context, req gateway.EditImageRequest) (string, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

type mockResolver struct{}

func (m *mockResolver) ResolvePayload(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", errors.New("画像が設定されていません")
	}
	// インライン画像の接頭辞だけ剥がす簡易版
	if idx := strings.Index(raw, ","); strings.HasPrefix(raw, "data:") && idx >= 0 {
		return raw[idx+1:], nil
	}
	return raw, nil
}

type recordingWriter struct {
	calls []writebackCall
	err   error
}

type writebackCall struct {
	storyID     int64
	panelOrder  int
	imageBase64 string
}

func (w *recordingWriter) UpdatePanelImage(ctx context.Context, storyID int64, panelOrder int, imageBase64 string) error {
	w.calls = append(w.calls, writebackCall{storyID, panelOrder, imageBase64})
	return w.err
}

func storedStory(st *store.StoryStore) domain.Story {
	story := domain.Story{
		Title:                "もりのたんけん",
		CharacterDescription: "a small girl with black hair",
		Panels: []domain.Panel{
			{ID: "panel-0", Text: " page 1", ImagePrompt: "forest road", ImageURL: "data:image/png;base64,QUFB"},
			{ID: "panel-1", Text: "page 2", ImagePrompt: "river side", ImageURL: "https://example.com/images/p1.png"},
			{ID: "panel-2", Text: "page 3", ImagePrompt: "night sky"},
		},
	}
	st.SetStory(story, 7)
	return story
}

// --- Tests ---

func TestPanelEditRunnerRejectsEmptyInstruction(t *testing.T) {
	st := store.New()
	storedStory(st)
	editor := &mockEditor{}
	er := NewPanelEditRunner(&mockResolver{}, editor, st, nil, "")

	_, err := er.Run(context.Background(), "panel-0", "   ")
	require.Error(t, err)
	assert.Zero(t, editor.calls, "空指示でリモート呼び出しが発生した")
}

func TestPanelEditRunnerRejectsPanelWithoutImage(t *testing.T) {
	st := store.New()
	storedStory(st)
	editor := &mockEditor{}
	er := NewPanelEditRunner(&mockResolver{}, editor, st, nil, "")

	_, err := er.Run(context.Background(), "panel-2", "make it brighter")
	require.Error(t, err)
	assert.Zero(t, editor.calls, "画像なしパネルでリモート呼び出しが発生した")
}

func TestPanelEditRunnerOptimisticUpdateAndWriteback(t *testing.T) {
	st := store.New()
	storedStory(st)
	editor := &mockEditor{result: "RURJVEVE"}
	writer := &recordingWriter{}
	sink := NewWritebackSink(writer, 1)
	er := NewPanelEditRunner(&mockResolver{}, editor, st, sink, "watercolor")

	panel, err := er.Run(context.Background(), "panel-0", "add a rainbow")
	require.NoError(t, err)
	assert.Equal(t, domain.InlineImageURL("RURJVEVE"), panel.ImageURL)

	// 編集リクエストの内訳
	assert.Equal(t, "QUFB", editor.lastReq.ImageBase64, "接頭辞つきのまま送信された")
	assert.Equal(t, "forest road", editor.lastReq.OriginalPrompt)
	assert.Equal(t, "add a rainbow", editor.lastReq.EditPrompt)
	assert.Equal(t, "a small girl with black hair", editor.lastReq.CastGuide)
	require.NotNil(t, editor.lastReq.Style)
	assert.Equal(t, "watercolor", *editor.lastReq.Style)

	// 書き戻しは保存済みIDと位置を指定して1回だけ
	failed := sink.Flush()
	assert.Zero(t, failed)
	require.Len(t, writer.calls, 1)
	assert.Equal(t, int64(7), writer.calls[0].storyID)
	assert.Equal(t, 0, writer.calls[0].panelOrder)
	assert.Equal(t, "RURJVEVE", writer.calls[0].imageBase64)

	// ストアにも反映されていること
	stored, ok := st.Story()
	require.True(t, ok)
	assert.Equal(t, domain.InlineImageURL("RURJVEVE"), stored.Panels[0].ImageURL)
}

func TestPanelEditRunnerWritebackFailureKeepsLocalResult(t *testing.T) {
	st := store.New()
	storedStory(st)
	editor := &mockEditor{result: "RURJVEVE"}
	writer := &recordingWriter{err: errors.New("This story has not been saved yet")}
	sink := NewWritebackSink(writer, 1)
	er := NewPanelEditRunner(&mockResolver{}, editor, st, sink, "")

	_, err := er.Run(context.Background(), "panel-1", "add a boat")
	require.NoError(t, err, "書き戻しの失敗が編集結果に伝播した")

	assert.Equal(t, int64(1), sink.Flush())

	stored, ok := st.Story()
	require.True(t, ok)
	assert.Equal(t, domain.InlineImageURL("RURJVEVE"), stored.Panels[1].ImageURL)
}

func TestPanelEditRunnerEditFailureLeavesPanelUnchanged(t *testing.T) {
	st := store.New()
	original := storedStory(st)
	editor := &mockEditor{err: errors.New("Image edit failed")}
	er := NewPanelEditRunner(&mockResolver{}, editor, st, nil, "")

	_, err := er.Run(context.Background(), "panel-0", "add a rainbow")
	require.Error(t, err)

	stored, ok := st.Story()
	require.True(t, ok)
	assert.Equal(t, original.Panels[0].ImageURL, stored.Panels[0].ImageURL)
}

func TestPanelEditRunnerUnknownPanel(t *testing.T) {
	st := store.New()
	storedStory(st)
	er := NewPanelEditRunner(&mockResolver{}, &mockEditor{}, st, nil, "")

	_, err := er.Run(context.Background(), "no-such-panel", "anything")
	require.Error(t, err)
}
