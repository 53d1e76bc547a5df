package application

import (
	"context"
	"time"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

// MoodFilter scopes mood queries to a company, with an optional date window.
// RequireUser limits the scope to entries carrying a user reference.
type MoodFilter struct {
	CompanyID   string
	DateRange   domain.DateRange
	RequireUser bool
}

// MoodRepository handles mood reads/writes.
// MoodRepository は気分記録の永続化ポート。
type MoodRepository interface {
	Create(ctx context.Context, mood *domain.Mood) error
	FindByID(ctx context.Context, id string) (*domain.Mood, error)
	Find(ctx context.Context, filter MoodFilter, paging domain.Paging) ([]domain.Mood, error)
	Count(ctx context.Context, filter MoodFilter) (int64, error)
	GroupByUser(ctx context.Context, filter MoodFilter) ([]domain.UserMoodEntries, error)
}

// CompanyDirectory resolves companies for validation and display mapping.
// 見つからない場合はエラーではなく nil を返す。
type CompanyDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.CompanyRef, error)
	FindByDomain(ctx context.Context, domainName string) (*domain.CompanyRef, error)
}

// UserDirectory resolves user display info and company headcounts.
type UserDirectory interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error)
	CountEnabled(ctx context.Context, companyID string) (int64, error)
}

// AccountRepository persists user accounts for signup and authentication.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	Create(ctx context.Context, account *domain.UserAccount) error
}

// PendingSignupRepository keeps verification-code signups until confirmed.
type PendingSignupRepository interface {
	Create(ctx context.Context, signup *domain.PendingSignup) error
	FindByCode(ctx context.Context, code string) (*domain.PendingSignup, error)
	Delete(ctx context.Context, code string) error
}

// ReportCache caches computed quantity reports. Get returns (nil, nil) on a miss.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.QuantityReport, error)
	Set(ctx context.Context, key string, report domain.QuantityReport) error
	InvalidateCompany(ctx context.Context, companyID string) error
}

// SubmitMoodCommand captures a mood submission.
type SubmitMoodCommand struct {
	CompanyID string
	UserID    string
	Mood      string
	Comment   string
	Source    string
	CreatedAt *time.Time // 開発・シード用の上書き。本番設定では無視される
}

// MoodPage is one window of the paginated mood feed.
type MoodPage struct {
	Moods      []domain.MoodView
	Page       int
	PageCount  int
	TotalItems int64
}

// MoodCommandService handles mood submissions.
type MoodCommandService interface {
	Submit(ctx context.Context, cmd SubmitMoodCommand) (*domain.MoodView, error)
}

// MoodQueryService serves the paginated mood feed.
type MoodQueryService interface {
	List(ctx context.Context, companyID string, paging domain.Paging, dateRange domain.DateRange) (*MoodPage, error)
}

// ReportService answers aggregate mood queries.
type ReportService interface {
	Quantity(ctx context.Context, companyID string, dateRange domain.DateRange) (*domain.QuantityReport, error)
}

// SignupCommand captures a signup request.
type SignupCommand struct {
	Email    string
	Password string
}

// AuthenticatedAccount is the result of a successful credential check.
type AuthenticatedAccount struct {
	UserID    string
	Email     string
	CompanyID string
}

// AccountService handles signup, verification and authentication.
type AccountService interface {
	Signup(ctx context.Context, cmd SignupCommand) (*domain.PendingSignup, error)
	Verify(ctx context.Context, code string) (*domain.UserRef, error)
	Authenticate(ctx context.Context, email, password string) (*AuthenticatedAccount, error)
}
