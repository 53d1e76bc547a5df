package application

import (
	"context"
	"fmt"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"go.uber.org/zap"
)

type reportService struct {
	moods  MoodRepository
	users  UserDirectory
	cache  ReportCache // nil の場合はキャッシュ無効
	logger *zap.SugaredLogger
}

// NewReportService constructs the quantity report service.
func NewReportService(moods MoodRepository, users UserDirectory, cache ReportCache, logger *zap.SugaredLogger) ReportService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &reportService{moods: moods, users: users, cache: cache, logger: logger}
}

// Quantity は会社全体の気分分布レポートを返す。
// ユーザー別にグルーピングした投稿を代表気分へ縮約し、有効ユーザー数と突き合わせる。
// 匿名投稿(ユーザー参照なし)は集計対象に含めない。
func (s *reportService) Quantity(ctx context.Context, companyID string, dateRange domain.DateRange) (*domain.QuantityReport, error) {
	key := quantityCacheKey(companyID, dateRange)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warnw("レポートキャッシュの参照に失敗", "key", key, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	filter := MoodFilter{CompanyID: companyID, DateRange: dateRange, RequireUser: true}
	grouped, err := s.moods.GroupByUser(ctx, filter)
	if err != nil {
		return nil, wrapStoreError("group moods by user", err)
	}

	totalUsers, err := s.users.CountEnabled(ctx, companyID)
	if err != nil {
		return nil, wrapStoreError("count enabled users", err)
	}

	report := domain.BuildQuantityReport(grouped, int(totalUsers))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report); err != nil {
			s.logger.Warnw("レポートキャッシュの保存に失敗", "key", key, "error", err)
		}
	}
	return &report, nil
}

// quantityCacheKey はキャッシュキーを組み立てる。期間なしは all として区別する。
func quantityCacheKey(companyID string, dateRange domain.DateRange) string {
	window := "all"
	if start, end, ok := dateRange.Bounds(); ok {
		window = fmt.Sprintf("%s_%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return fmt.Sprintf("reports:quantity:%s:%s", companyID, window)
}
