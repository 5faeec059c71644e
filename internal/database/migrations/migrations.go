// Package migrations はスキーマ移行用の SQL ファイルを埋め込みます。
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
