package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingWriter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (w *countingWriter) UpdatePanelImage(ctx context.Context, storyID int64, panelOrder int, imageBase64 string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	return w.err
}

func TestWritebackSinkFlushWaitsForAll(t *testing.T) {
	writer := &countingWriter{}
	sink := NewWritebackSink(writer, 2)

	for i := 0; i < 5; i++ {
		sink.Submit(context.Background(), 1, i, "payload")
	}

	failed := sink.Flush()
	assert.Zero(t, failed)
	assert.Equal(t, 5, writer.calls)
}

func TestWritebackSinkCountsFailures(t *testing.T) {
	writer := &countingWriter{err: errors.New("backend unavailable")}
	sink := NewWritebackSink(writer, 2)

	for i := 0; i < 3; i++ {
		sink.Submit(context.Background(), 1, i, "payload")
	}

	assert.Equal(t, int64(3), sink.Flush())
	assert.Equal(t, 3, writer.calls)
}
