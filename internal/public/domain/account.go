package domain

import "time"

// PendingSignup は確認コードの検証を待つ仮登録。検証が完了すると UserAccount に昇格する。
type PendingSignup struct {
	Code         string
	Email        string
	PasswordHash string
	CompanyID    string
	CreatedAt    time.Time
}

// UserAccount は認証に使うユーザー情報。
type UserAccount struct {
	ID           string
	Email        string
	PasswordHash string
	CompanyID    string
	Enabled      bool
	CreatedAt    time.Time
}
