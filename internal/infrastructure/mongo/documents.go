package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompanyDocument は MongoDB 上での会社スキーマを Go 構造体として表現したもの。
type CompanyDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Domain    string             `bson:"domain"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// UserDocument は従業員アカウントのスキーマ。company は CompanyDocument への参照。
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CompanyID    primitive.ObjectID `bson:"company"`
	Enabled      bool               `bson:"enabled"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// MoodDocument は気分記録1件分のスキーマ。user は匿名投稿では省略される。
type MoodDocument struct {
	ID        primitive.ObjectID  `bson:"_id"`
	CompanyID primitive.ObjectID  `bson:"company"`
	UserID    *primitive.ObjectID `bson:"user,omitempty"`
	Mood      string              `bson:"mood"`
	Comment   string              `bson:"comment"`
	Source    string              `bson:"from"`
	CreatedAt time.Time           `bson:"createdAt"`
}

// PendingUserDocument は確認コード待ちの仮登録スキーマ。
type PendingUserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Code         string             `bson:"code"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CompanyID    primitive.ObjectID `bson:"company"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
