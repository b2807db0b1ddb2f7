package builder

import (
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config        // Configは、環境変数から読み込まれたグローバルな設定です（接続先URLなど）。
	Options config.Options        // Optionsは、コマンドラインから渡された実行時の設定です（入力パス、対象IDなど）。
	Reader  remoteio.InputReader  // Readerは、プロフィールJSONなど入力データの読み込みに使用する入力元です。
	Writer  remoteio.OutputWriter // Writerは、生成された内容を保存するための出力先です。
	Manager *workflow.Manager     // Managerは、生成・編集・出力の各Runnerを構築する共有ワークフローです。

	httpClient httpkit.HTTPClient // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.HTTPClient,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	manager *workflow.Manager,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Reader:     reader,
		Writer:     writer,
		Manager:    manager,
		httpClient: httpClient,
	}
}
