package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"go.uber.org/zap"
)

type moodCommandService struct {
	moods     MoodRepository
	companies CompanyDirectory
	users     UserDirectory
	cache     ReportCache // nil の場合はキャッシュ無効
	logger    *zap.SugaredLogger

	// createdAt の上書きを許可するか。開発環境とシード投入でのみ true。
	allowCreatedAtOverride bool
}

// NewMoodCommandService constructs the mood submission service.
func NewMoodCommandService(moods MoodRepository, companies CompanyDirectory, users UserDirectory, cache ReportCache, logger *zap.SugaredLogger, allowCreatedAtOverride bool) MoodCommandService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &moodCommandService{
		moods:                  moods,
		companies:              companies,
		users:                  users,
		cache:                  cache,
		logger:                 logger,
		allowCreatedAtOverride: allowCreatedAtOverride,
	}
}

// Submit は入力検証、会社の存在確認、保存、表示名への解決までを行う。
// 冪等ではなく、呼び出しごとに新しい記録を作る。
func (s *moodCommandService) Submit(ctx context.Context, cmd SubmitMoodCommand) (*domain.MoodView, error) {
	if strings.TrimSpace(cmd.CompanyID) == "" {
		return nil, NewValidationError("no mood values provided")
	}

	value, err := domain.NewMoodValue(cmd.Mood)
	if err != nil {
		return nil, NewValidationError("mood value is not valid")
	}

	comment := strings.TrimSpace(cmd.Comment)
	if comment == "" {
		return nil, NewValidationError("no mood values provided")
	}
	if utf8.RuneCountInString(comment) > domain.MaxCommentRunes {
		return nil, NewValidationError("comment must be 140 characters or less")
	}

	source, err := domain.NewMoodSource(cmd.Source)
	if err != nil {
		return nil, NewValidationError("mood source is not valid")
	}

	company, err := s.companies.FindByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, wrapStoreError("find company", err)
	}
	if company == nil {
		return nil, NewNotFoundError("no company exists with that id")
	}

	mood := &domain.Mood{
		CompanyID: company.ID,
		UserID:    strings.TrimSpace(cmd.UserID),
		Value:     value,
		Comment:   comment,
		Source:    source,
	}
	if cmd.CreatedAt != nil && s.allowCreatedAtOverride {
		mood.CreatedAt = cmd.CreatedAt.UTC()
	}

	if err := s.moods.Create(ctx, mood); err != nil {
		return nil, wrapStoreError("create mood", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCompany(ctx, company.ID); err != nil {
			s.logger.Warnw("レポートキャッシュの無効化に失敗", "companyId", company.ID, "error", err)
		}
	}

	view := &domain.MoodView{Mood: *mood, Company: company.Name}
	if mood.UserID != "" {
		users, err := s.users.FindByIDs(ctx, []string{mood.UserID})
		if err != nil {
			return nil, wrapStoreError("resolve mood user", err)
		}
		if user, ok := users[mood.UserID]; ok {
			view.User = user.Email
		}
	}
	return view, nil
}
