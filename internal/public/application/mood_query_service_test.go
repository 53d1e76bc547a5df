package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/team-mood-services/api/internal/public/application"
	"github.com/sngm3741/team-mood-services/api/internal/public/application/mocks"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

// fakeMoodStore は35件の記録を持つ会社を模したページング検証用のモック一式。
func fakeMoodStore(t *testing.T, total int) (*mocks.MoodRepository, *mocks.CompanyDirectory, *mocks.UserDirectory) {
	t.Helper()

	all := make([]domain.Mood, 0, total)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		all = append(all, domain.Mood{
			ID:        fmt.Sprintf("m%d", i),
			CompanyID: "c1",
			UserID:    fmt.Sprintf("u%d", i%5),
			Value:     domain.MoodJoy,
			Comment:   "fine",
			Source:    domain.SourceWeb,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute), // createdAt 降順
		})
	}

	moods := &mocks.MoodRepository{
		FindFunc: func(_ context.Context, filter application.MoodFilter, paging domain.Paging) ([]domain.Mood, error) {
			assert.Equal(t, "c1", filter.CompanyID)
			offset := paging.Offset()
			if offset >= len(all) {
				return []domain.Mood{}, nil
			}
			end := offset + domain.MoodsPerPage
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		},
		CountFunc: func(_ context.Context, filter application.MoodFilter) (int64, error) {
			assert.Equal(t, "c1", filter.CompanyID)
			return int64(len(all)), nil
		},
	}
	companies := &mocks.CompanyDirectory{
		FindByIDFunc: func(_ context.Context, id string) (*domain.CompanyRef, error) {
			return &domain.CompanyRef{ID: id, Name: "Nearsoft"}, nil
		},
	}
	users := &mocks.UserDirectory{
		FindByIDsFunc: func(_ context.Context, ids []string) (map[string]domain.UserRef, error) {
			result := make(map[string]domain.UserRef, len(ids))
			for _, id := range ids {
				result[id] = domain.UserRef{ID: id, Email: id + "@nearsoft.com"}
			}
			return result, nil
		},
	}
	return moods, companies, users
}

func TestListMoods(t *testing.T) {
	ctx := context.Background()

	t.Run("first page of 35 items", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 35)
		service := application.NewMoodQueryService(moods, companies, users)

		page, err := service.List(ctx, "c1", domain.NewPaging(1), domain.DateRange{})
		require.NoError(t, err)
		assert.Len(t, page.Moods, 30)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.PageCount)
		assert.Equal(t, int64(35), page.TotalItems)
		assert.Equal(t, "m0", page.Moods[0].Mood.ID)
		assert.Equal(t, "Nearsoft", page.Moods[0].Company)
		assert.Equal(t, "u0@nearsoft.com", page.Moods[0].User)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 35)
		service := application.NewMoodQueryService(moods, companies, users)

		page, err := service.List(ctx, "c1", domain.NewPaging(2), domain.DateRange{})
		require.NoError(t, err)
		assert.Len(t, page.Moods, 5)
		assert.Equal(t, 2, page.PageCount)
		assert.Equal(t, int64(35), page.TotalItems)
	})

	t.Run("page past the end is empty but keeps counts", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 35)
		service := application.NewMoodQueryService(moods, companies, users)

		page, err := service.List(ctx, "c1", domain.NewPaging(9), domain.DateRange{})
		require.NoError(t, err)
		assert.Empty(t, page.Moods)
		assert.Equal(t, 2, page.PageCount)
		assert.Equal(t, int64(35), page.TotalItems)
	})

	t.Run("empty company has zero pages", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 0)
		service := application.NewMoodQueryService(moods, companies, users)

		page, err := service.List(ctx, "c1", domain.NewPaging(1), domain.DateRange{})
		require.NoError(t, err)
		assert.Empty(t, page.Moods)
		assert.Equal(t, 0, page.PageCount)
		assert.Equal(t, int64(0), page.TotalItems)
	})

	t.Run("date range is forwarded to the repository", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 3)
		dateRange := domain.DateRange{
			From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		}
		var findFilter, countFilter application.MoodFilter
		inner := moods.FindFunc
		moods.FindFunc = func(ctx context.Context, filter application.MoodFilter, paging domain.Paging) ([]domain.Mood, error) {
			findFilter = filter
			return inner(ctx, filter, paging)
		}
		innerCount := moods.CountFunc
		moods.CountFunc = func(ctx context.Context, filter application.MoodFilter) (int64, error) {
			countFilter = filter
			return innerCount(ctx, filter)
		}
		service := application.NewMoodQueryService(moods, companies, users)

		_, err := service.List(ctx, "c1", domain.NewPaging(1), dateRange)
		require.NoError(t, err)
		assert.Equal(t, dateRange, findFilter.DateRange)
		assert.Equal(t, dateRange, countFilter.DateRange)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		moods, companies, users := fakeMoodStore(t, 3)
		cause := errors.New("cursor timeout")
		moods.FindFunc = func(_ context.Context, _ application.MoodFilter, _ domain.Paging) ([]domain.Mood, error) {
			return nil, cause
		}
		service := application.NewMoodQueryService(moods, companies, users)

		_, err := service.List(ctx, "c1", domain.NewPaging(1), domain.DateRange{})
		var sErr *application.StoreError
		require.ErrorAs(t, err, &sErr)
		assert.ErrorIs(t, err, cause)
	})
}
