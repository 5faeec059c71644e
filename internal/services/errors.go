// Package services はアカウント・認証・タスクのビジネスロジックを扱います。
package services

import "errors"

// ハンドラーはこれらのエラーを errors.Is で判定し、HTTP ステータスに変換します。
var (
	ErrAuthentication = errors.New("invalid credentials")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("username already exists")
)
