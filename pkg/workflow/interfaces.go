package workflow

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
)

// Workflow は、絵本生成ワークフローの各工程を担当するRunnerを構築するためのインターフェースを定義します。
type Workflow interface {
	BuildGenerateRunner() GenerateRunner
	BuildEditRunner() (EditRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// GenerateRunner は、プロフィールを検証し、ストーリーの生成・保存・正規化を行う責務を持ちます。
type GenerateRunner interface {
	Run(ctx context.Context, profile domain.Profile) (domain.Story, int64, error)
	RunScript(ctx context.Context, profile domain.Profile) (*gateway.ScriptResponse, error)
}

// EditRunner は、パネル1枚の画像を指示に従って編集し、結果を反映する責務を持ちます。
type EditRunner interface {
	Run(ctx context.Context, panelID, instruction string) (domain.Panel, error)
}

// PublishRunner は、完成したストーリーを指定された形式（Markdown / HTML）で出力する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, story domain.Story, outputDir string) (publisher.PublishResult, error)
	BuildMarkdown(story domain.Story) string
}
