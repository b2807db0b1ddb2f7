package asset

import (
	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は書き出した挿絵を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultBookName はエクスポートされる絵本 Markdown のデフォルトのファイル名です。
	DefaultBookName = "storybook.md"
	// DefaultCoverFileName は表紙画像のファイル名です。
	DefaultCoverFileName = "cover.png"
	// DefaultPanelFileName はパネル画像の共通のベースファイル名です。
	DefaultPanelFileName = "panel.png"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/panel.png", 1 -> "path/to/panel_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}
