package domain

import (
	"fmt"
	"strings"
	"time"
)

// MoodValue は気分投稿で許可される値。閉じた集合で、これ以外の値はバリデーションで拒否する。
type MoodValue string

// ネガティブからポジティブへ並ぶ8段階。normal が中立のデフォルト。
const (
	MoodAnger   MoodValue = "anger"
	MoodSadness MoodValue = "sadness"
	MoodFear    MoodValue = "fear"
	MoodTired   MoodValue = "tired"
	MoodNormal  MoodValue = "normal"
	MoodCalm    MoodValue = "calm"
	MoodJoy     MoodValue = "joy"
	MoodLove    MoodValue = "love"
)

var moodValues = []MoodValue{
	MoodAnger,
	MoodSadness,
	MoodFear,
	MoodTired,
	MoodNormal,
	MoodCalm,
	MoodJoy,
	MoodLove,
}

// MoodValues returns the permitted values in canonical order.
func MoodValues() []MoodValue {
	return append([]MoodValue(nil), moodValues...)
}

// NewMoodValue は入力文字列を小文字へ正規化し、許可された値かを検証する。
func NewMoodValue(value string) (MoodValue, error) {
	normalized := MoodValue(strings.ToLower(strings.TrimSpace(value)))
	for _, v := range moodValues {
		if v == normalized {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid mood value: %q", value)
}

func (v MoodValue) String() string {
	return string(v)
}

// MoodSource は投稿経路を表す。
type MoodSource string

const (
	SourceWeb     MoodSource = "web"
	SourceAndroid MoodSource = "android"
	SourceIOS     MoodSource = "ios"
	SourceSlack   MoodSource = "slack"
)

// NewMoodSource は投稿経路を検証する。未指定時は web を採用する。
func NewMoodSource(value string) (MoodSource, error) {
	normalized := MoodSource(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return SourceWeb, nil
	}
	switch normalized {
	case SourceWeb, SourceAndroid, SourceIOS, SourceSlack:
		return normalized, nil
	}
	return "", fmt.Errorf("invalid mood source: %q", value)
}

func (s MoodSource) String() string {
	return string(s)
}

// MaxCommentRunes はコメントの最大文字数。
const MaxCommentRunes = 140

// Mood は1件の気分記録。作成後に更新されることはない。
type Mood struct {
	ID        string
	CompanyID string
	UserID    string // 匿名投稿では空
	Value     MoodValue
	Comment   string
	Source    MoodSource
	CreatedAt time.Time
}

// CompanyRef は気分記録が属する会社の表示用参照。
type CompanyRef struct {
	ID     string
	Name   string
	Domain string
}

// UserRef はユーザーの表示用参照。
type UserRef struct {
	ID    string
	Email string
}

// MoodView は内部 ID を表示名へ解決した気分記録。レスポンス整形の入力になる。
type MoodView struct {
	Mood    Mood
	Company string // 会社名
	User    string // ユーザーのメールアドレス。匿名投稿では空
}
