package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/workflow"
)

// BuildGenerateRunner はストーリー生成を担当する Runner を構築します。
func BuildGenerateRunner(appCtx *AppContext) workflow.GenerateRunner {
	return appCtx.Manager.BuildGenerateRunner()
}

// BuildEditRunner はパネル画像編集を担当する Runner を構築します。
func BuildEditRunner(appCtx *AppContext) (workflow.EditRunner, error) {
	er, err := appCtx.Manager.BuildEditRunner()
	if err != nil {
		return nil, fmt.Errorf("EditRunnerの構築に失敗したのだ: %w", err)
	}
	return er, nil
}

// BuildPublishRunner はコンテンツ保存と変換を行う Runner を構築します。
func BuildPublishRunner(appCtx *AppContext) (workflow.PublishRunner, error) {
	pr, err := appCtx.Manager.BuildPublishRunner()
	if err != nil {
		return nil, fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}
	return pr, nil
}

// LoadProfile は指定パスからプロフィールJSONを読み込んでパースするのだ。
// パスには gs:// も指定できる。
func LoadProfile(ctx context.Context, appCtx *AppContext, path string) (domain.Profile, error) {
	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("プロフィール '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var profile domain.Profile
	if err := json.NewDecoder(rc).Decode(&profile); err != nil {
		return domain.Profile{}, fmt.Errorf("プロフィール '%s' のデコードに失敗しました: %w", path, err)
	}
	return profile, nil
}
