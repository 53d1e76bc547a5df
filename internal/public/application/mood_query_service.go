package application

import (
	"context"
	"strings"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

type moodQueryService struct {
	moods     MoodRepository
	companies CompanyDirectory
	users     UserDirectory
}

// NewMoodQueryService constructs the paginated mood feed service.
func NewMoodQueryService(moods MoodRepository, companies CompanyDirectory, users UserDirectory) MoodQueryService {
	return &moodQueryService{moods: moods, companies: companies, users: users}
}

// List は会社と期間で絞った気分記録を createdAt 降順の固定30件窓で返す。
// ページ数と総件数は同じ絞り込み条件に対して計算するため、
// 末尾を超えるページ指定でも空の窓と正しい件数が返る。
func (s *moodQueryService) List(ctx context.Context, companyID string, paging domain.Paging, dateRange domain.DateRange) (*MoodPage, error) {
	filter := MoodFilter{CompanyID: companyID, DateRange: dateRange}

	moods, err := s.moods.Find(ctx, filter, paging)
	if err != nil {
		return nil, wrapStoreError("find moods", err)
	}

	total, err := s.moods.Count(ctx, filter)
	if err != nil {
		return nil, wrapStoreError("count moods", err)
	}

	views, err := s.resolveViews(ctx, companyID, moods)
	if err != nil {
		return nil, err
	}

	return &MoodPage{
		Moods:      views,
		Page:       paging.Page,
		PageCount:  domain.PageCount(total),
		TotalItems: total,
	}, nil
}

// resolveViews は会社名とユーザーのメールアドレスをまとめて引き当てる。
func (s *moodQueryService) resolveViews(ctx context.Context, companyID string, moods []domain.Mood) ([]domain.MoodView, error) {
	companyName := ""
	if len(moods) > 0 {
		company, err := s.companies.FindByID(ctx, companyID)
		if err != nil {
			return nil, wrapStoreError("find company", err)
		}
		if company != nil {
			companyName = company.Name
		}
	}

	userIDs := make([]string, 0, len(moods))
	seen := make(map[string]struct{})
	for _, mood := range moods {
		id := strings.TrimSpace(mood.UserID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}

	userMap := map[string]domain.UserRef{}
	if len(userIDs) > 0 {
		resolved, err := s.users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, wrapStoreError("resolve mood users", err)
		}
		userMap = resolved
	}

	views := make([]domain.MoodView, 0, len(moods))
	for _, mood := range moods {
		view := domain.MoodView{Mood: mood, Company: companyName}
		if user, ok := userMap[mood.UserID]; ok {
			view.User = user.Email
		}
		views = append(views, view)
	}
	return views, nil
}
