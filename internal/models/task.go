// Package models はアカウントとタスクを定義します。
package models

import (
	"time"
)

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"` // NULL 可
	Done        bool      `db:"done" json:"done"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"` // 一覧のソートキー
}

// TaskRequest はタスクの作成・更新リクエストです。
// title はキーの存在のみ必須で、空文字列は許可します。
type TaskRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// TaskInput はサービス層に渡す正規化済みの入力です。
type TaskInput struct {
	Title       string
	Description *string
	Done        bool
}

// ToInput はリクエストを TaskInput に変換します。done が省略された場合は false です。
func (r TaskRequest) ToInput() TaskInput {
	in := TaskInput{Description: r.Description}
	if r.Title != nil {
		in.Title = *r.Title
	}
	if r.Done != nil {
		in.Done = *r.Done
	}
	return in
}
