package main

import (
	"github.com/shouni/go-storyboard-kit/cmd"
)

// main はアプリケーションの唯一のエントリーポイントなのだ！
// ストーリーボードの各工程はサブコマンドとして cmd パッケージに並んでいるのだよ。
func main() {
	cmd.Execute()
}
