package models

import "time"

// Account は認証情報を持つユーザーアカウントを表します。
// パスワードは平文のまま保存・比較されるため、JSON には出しません。
type Account struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AccountRegisterRequest はアカウント登録リクエストの構造体です。
// キーの存在のみ必須で、空文字列はそのまま受け付けます。
type AccountRegisterRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// Credentials はリクエストのユーザー名とパスワードを返します。
func (r AccountRegisterRequest) Credentials() (username, password string) {
	if r.Username != nil {
		username = *r.Username
	}
	if r.Password != nil {
		password = *r.Password
	}
	return username, password
}
