package runner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/shouni/go-storybook-kit/pkg/config"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/store"
)

// StoryGenerator は、プロフィールからの一括生成と台本のみの生成を
// 提供するバックエンド操作を抽象化します。
type StoryGenerator interface {
	GenerateAndSaveStory(ctx context.Context, req gateway.GenerateStoryRequest) (*gateway.GenerateStoryResponse, error)
	GenerateStoryScript(ctx context.Context, req gateway.ScriptRequest) (*gateway.ScriptResponse, error)
	ResolveImageRef(ref string) string
}

// StoryGenerateRunner は、プロフィール検証から生成・正規化・ストアへの
// 反映までの一連の流れを管理します。
type StoryGenerateRunner struct {
	cfg     config.Config
	gen     StoryGenerator
	store   *store.StoryStore
	limiter *rate.Limiter
}

// NewStoryGenerateRunner は依存関係を注入して初期化します。
// 生成APIの呼び出しは cfg.RateInterval ごとに1回へ制限されます。
func NewStoryGenerateRunner(cfg config.Config, gen StoryGenerator, st *store.StoryStore) *StoryGenerateRunner {
	interval := cfg.RateInterval
	if interval <= 0 {
		interval = config.DefaultRateInterval
	}
	return &StoryGenerateRunner{
		cfg:     cfg,
		gen:     gen,
		store:   st,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run はプロフィールを検証し、ストーリーの生成と保存をバックエンドに
// 依頼して、正規化したストーリーをローカルストアへ反映します。
// 生成に失敗した場合、ストアは一切変更されません。
func (sr *StoryGenerateRunner) Run(ctx context.Context, profile domain.Profile) (domain.Story, int64, error) {
	// 1. 検証に失敗したリクエストはネットワークに出さない
	if err := profile.Validate(); err != nil {
		return domain.Story{}, 0, fmt.Errorf("プロフィールの検証に失敗しました: %w", err)
	}

	if err := sr.limiter.Wait(ctx); err != nil {
		return domain.Story{}, 0, fmt.Errorf("生成リクエストの待機が中断されました: %w", err)
	}

	slog.InfoContext(ctx, "StoryRunner: Generating story", "kid_name", profile.Name)

	resp, err := sr.gen.GenerateAndSaveStory(ctx, gateway.GenerateStoryRequest{
		Profile: gateway.ToProfileRequest(profile),
	})
	if err != nil {
		return domain.Story{}, 0, fmt.Errorf("ストーリー生成に失敗しました: %w", err)
	}

	// 2. レスポンスを正規化してストアに反映
	story := gateway.ToStory(resp.Story, sr.gen.ResolveImageRef)
	sr.store.SetStory(story, resp.Story.ID)

	slog.InfoContext(ctx, "StoryRunner: Story generated",
		"story_id", resp.Story.ID,
		"title", story.Title,
		"panels", len(story.Panels),
	)
	return story, resp.Story.ID, nil
}

// RunScript は画像を伴わない台本のみを生成します。保存は行われず、
// ローカルストアにも反映されません。
func (sr *StoryGenerateRunner) RunScript(ctx context.Context, profile domain.Profile) (*gateway.ScriptResponse, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("プロフィールの検証に失敗しました: %w", err)
	}

	if err := sr.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("生成リクエストの待機が中断されました: %w", err)
	}

	resp, err := sr.gen.GenerateStoryScript(ctx, gateway.ScriptRequest{
		Profile: gateway.ToProfileRequest(profile),
	})
	if err != nil {
		return nil, fmt.Errorf("台本生成に失敗しました: %w", err)
	}
	return resp, nil
}
