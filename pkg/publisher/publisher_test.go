package publisher

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

type memoryWriter struct {
	files map[string][]byte
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: make(map[string][]byte)}
}

func (w *memoryWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	w.files[path] = data
	return nil
}

func sampleStory() domain.Story {
	return domain.Story{
		Title:    "そらのたび",
		Foreword: "これは はなちゃんの ものがたり",
		Panels: []domain.Panel{
			{ID: "p0", Text: "first", ImageURL: "https://example.com/p0.png"},
			{ID: "p1", Text: "second", ImageURL: "data:image/png;base64,QUJD"},
			{ID: "p2", Text: "third"},
		},
		CoverImageURL: "https://example.com/cover.png",
	}
}

func TestBuildMarkdownFollowsBookOrder(t *testing.T) {
	p := NewStorybookPublisher(newMemoryWriter(), nil)
	md := p.BuildMarkdown(sampleStory())

	// 表紙 → まえがき → パネル → 結び の順で1回ずつ現れること
	coverIdx := strings.Index(md, frontCoverLabel)
	forewordIdx := strings.Index(md, "これは はなちゃんの ものがたり")
	firstIdx := strings.Index(md, "first")
	thirdIdx := strings.Index(md, "third")
	closingIdx := strings.Index(md, closingText)
	backIdx := strings.Index(md, backCoverLabel)

	require.True(t, coverIdx >= 0 && forewordIdx >= 0 && firstIdx >= 0 && thirdIdx >= 0 && closingIdx >= 0 && backIdx >= 0, "必須要素が欠けている: %s", md)
	assert.Less(t, coverIdx, forewordIdx)
	assert.Less(t, forewordIdx, firstIdx)
	assert.Less(t, firstIdx, thirdIdx)
	assert.Less(t, thirdIdx, closingIdx)
	assert.Less(t, closingIdx, backIdx)

	assert.Equal(t, 1, strings.Count(md, "first"), "パネルが複数回出力された")
	assert.Equal(t, 1, strings.Count(md, closingText))
}

func TestPublishWritesMarkdownAndImages(t *testing.T) {
	writer := newMemoryWriter()
	p := NewStorybookPublisher(writer, nil)

	result, err := p.Publish(context.Background(), sampleStory(), Options{OutputDir: "output/book"})
	require.NoError(t, err)

	// インライン画像だけがファイルへ展開されること
	require.Len(t, result.ImagePaths, 1)
	assert.Contains(t, result.ImagePaths[0], "panel_2.png")
	assert.Equal(t, []byte("ABC"), writer.files[result.ImagePaths[0]])

	md := string(writer.files[result.MarkdownPath])
	assert.Contains(t, md, "https://example.com/cover.png", "リモート表紙がURLのまま参照されていない")
	assert.Contains(t, md, "images/panel_2.png", "展開済み画像が相対パスで参照されていない")

	// HTML ランナーなしでは HTML は生成されない
	assert.Empty(t, result.HTMLPath)
}

func TestBuildMarkdownWithoutImagesUsesPlaceholder(t *testing.T) {
	p := NewStorybookPublisher(newMemoryWriter(), nil)
	story := domain.Story{
		Title:  "まっしろな本",
		Panels: []domain.Panel{{ID: "p0", Text: "only text"}},
	}

	md := p.BuildMarkdown(story)
	assert.Contains(t, md, placeholder)
}
