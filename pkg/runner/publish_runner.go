package runner

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/config"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
)

// DefaultPublishRunner は pkg/publisher を利用した標準実装なのだ。
type DefaultPublishRunner struct {
	cfg       config.Config
	publisher *publisher.StorybookPublisher
}

func NewDefaultPublishRunner(cfg config.Config, pub *publisher.StorybookPublisher) *DefaultPublishRunner {
	return &DefaultPublishRunner{
		cfg:       cfg,
		publisher: pub,
	}
}

func (pr *DefaultPublishRunner) Run(ctx context.Context, story domain.Story, outputDir string) (publisher.PublishResult, error) {
	opts := publisher.Options{
		OutputDir: outputDir,
	}

	return pr.publisher.Publish(ctx, story, opts)
}

// BuildMarkdown は保存処理を行わず、構造体から Markdown 文字列のみを生成して返却します。
// 表示用などで、解決済みURLに置換済みのデータを扱う際に便利です。
func (pr *DefaultPublishRunner) BuildMarkdown(story domain.Story) string {
	return pr.publisher.BuildMarkdown(story)
}
