package workflow

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/builder"

	"github.com/shouni/go-storybook-kit/pkg/asset"
	"github.com/shouni/go-storybook-kit/pkg/config"
	"github.com/shouni/go-storybook-kit/pkg/gateway"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
	"github.com/shouni/go-storybook-kit/pkg/runner"
	"github.com/shouni/go-storybook-kit/pkg/store"
)

const cacheCleanupInterval = 15 * time.Minute

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
// ゲートウェイクライアントとローカルストアは Manager が一度だけ生成し、
// 全ての Runner で共有されます。
type Manager struct {
	cfg        config.Config
	client     *gateway.Client
	store      *store.StoryStore
	httpClient httpkit.HTTPClient
	writer     remoteio.OutputWriter
	sink       *runner.WritebackSink
}

// New は、設定と共有クライアントを基に新しい Manager を初期化します。
// writer は nil でもよく、その場合パブリッシュ機能だけが使えません。
func New(cfg config.Config, httpClient httpkit.HTTPClient, writer remoteio.OutputWriter) (*Manager, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}

	client := gateway.NewClient(cfg.APIBaseURL, cfg.ImageBaseURL, cfg.RequestTimeout)

	return &Manager{
		cfg:        cfg,
		client:     client,
		store:      store.New(),
		httpClient: httpClient,
		writer:     writer,
		sink:       runner.NewWritebackSink(client, cfg.WritebackWorkers),
	}, nil
}

// Gateway は共有のバックエンドクライアントを返します。
// 一覧・取得・削除など Runner を介さない操作に使います。
func (m *Manager) Gateway() *gateway.Client {
	return m.client
}

// Store は共有のローカルストアを返します。
func (m *Manager) Store() *store.StoryStore {
	return m.store
}

// BuildGenerateRunner はストーリー生成を担当する Runner を作成するのだ。
func (m *Manager) BuildGenerateRunner() GenerateRunner {
	return runner.NewStoryGenerateRunner(m.cfg, m.client, m.store)
}

// BuildEditRunner はパネル画像編集を担当する Runner を作成するのだ。
func (m *Manager) BuildEditRunner() (EditRunner, error) {
	imgCache := cache.New(m.cfg.CacheTTL, cacheCleanupInterval)
	resolver, err := asset.NewResolver(m.httpClient, imgCache, m.cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("画像リゾルバの初期化に失敗しました: %w", err)
	}

	return runner.NewPanelEditRunner(resolver, m.client, m.store, m.sink, m.cfg.ArtStyle), nil
}

// BuildPublishRunner は成果物のパブリッシュを担当する Runner を作成するのだ。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	if m.writer == nil {
		return nil, fmt.Errorf("OutputWriter が設定されていません")
	}

	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	md2htmlBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("md2htmlBuilderの初期化に失敗しました: %w", err)
	}
	md2htmlRunner, err := md2htmlBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("md2htmlrunnerの初期化に失敗しました: %w", err)
	}

	pub := publisher.NewStorybookPublisher(m.writer, md2htmlRunner)

	return runner.NewDefaultPublishRunner(m.cfg, pub), nil
}

// Flush は投入済みの書き戻しを全て待ち、失敗件数を返します。
// アプリケーション終了前に必ず呼んでください。
func (m *Manager) Flush() int64 {
	return m.sink.Flush()
}
