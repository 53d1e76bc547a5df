// Package mocks provides function-field test doubles for the application ports.
package mocks

import (
	"context"

	"github.com/sngm3741/team-mood-services/api/internal/public/application"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

// MoodRepository implements application.MoodRepository.
type MoodRepository struct {
	CreateFunc      func(ctx context.Context, mood *domain.Mood) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Mood, error)
	FindFunc        func(ctx context.Context, filter application.MoodFilter, paging domain.Paging) ([]domain.Mood, error)
	CountFunc       func(ctx context.Context, filter application.MoodFilter) (int64, error)
	GroupByUserFunc func(ctx context.Context, filter application.MoodFilter) ([]domain.UserMoodEntries, error)
}

func (m *MoodRepository) Create(ctx context.Context, mood *domain.Mood) error {
	return m.CreateFunc(ctx, mood)
}

func (m *MoodRepository) FindByID(ctx context.Context, id string) (*domain.Mood, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MoodRepository) Find(ctx context.Context, filter application.MoodFilter, paging domain.Paging) ([]domain.Mood, error) {
	return m.FindFunc(ctx, filter, paging)
}

func (m *MoodRepository) Count(ctx context.Context, filter application.MoodFilter) (int64, error) {
	return m.CountFunc(ctx, filter)
}

func (m *MoodRepository) GroupByUser(ctx context.Context, filter application.MoodFilter) ([]domain.UserMoodEntries, error) {
	return m.GroupByUserFunc(ctx, filter)
}

// CompanyDirectory implements application.CompanyDirectory.
type CompanyDirectory struct {
	FindByIDFunc     func(ctx context.Context, id string) (*domain.CompanyRef, error)
	FindByDomainFunc func(ctx context.Context, domainName string) (*domain.CompanyRef, error)
}

func (m *CompanyDirectory) FindByID(ctx context.Context, id string) (*domain.CompanyRef, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *CompanyDirectory) FindByDomain(ctx context.Context, domainName string) (*domain.CompanyRef, error) {
	return m.FindByDomainFunc(ctx, domainName)
}

// UserDirectory implements application.UserDirectory.
type UserDirectory struct {
	FindByIDsFunc    func(ctx context.Context, ids []string) (map[string]domain.UserRef, error)
	CountEnabledFunc func(ctx context.Context, companyID string) (int64, error)
}

func (m *UserDirectory) FindByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func (m *UserDirectory) CountEnabled(ctx context.Context, companyID string) (int64, error) {
	return m.CountEnabledFunc(ctx, companyID)
}

// AccountRepository implements application.AccountRepository.
type AccountRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*domain.UserAccount, error)
	CreateFunc      func(ctx context.Context, account *domain.UserAccount) error
}

func (m *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *AccountRepository) Create(ctx context.Context, account *domain.UserAccount) error {
	return m.CreateFunc(ctx, account)
}

// PendingSignupRepository implements application.PendingSignupRepository.
type PendingSignupRepository struct {
	CreateFunc     func(ctx context.Context, signup *domain.PendingSignup) error
	FindByCodeFunc func(ctx context.Context, code string) (*domain.PendingSignup, error)
	DeleteFunc     func(ctx context.Context, code string) error
}

func (m *PendingSignupRepository) Create(ctx context.Context, signup *domain.PendingSignup) error {
	return m.CreateFunc(ctx, signup)
}

func (m *PendingSignupRepository) FindByCode(ctx context.Context, code string) (*domain.PendingSignup, error) {
	return m.FindByCodeFunc(ctx, code)
}

func (m *PendingSignupRepository) Delete(ctx context.Context, code string) error {
	return m.DeleteFunc(ctx, code)
}

// ReportCache implements application.ReportCache.
type ReportCache struct {
	GetFunc               func(ctx context.Context, key string) (*domain.QuantityReport, error)
	SetFunc               func(ctx context.Context, key string, report domain.QuantityReport) error
	InvalidateCompanyFunc func(ctx context.Context, companyID string) error
}

func (m *ReportCache) Get(ctx context.Context, key string) (*domain.QuantityReport, error) {
	return m.GetFunc(ctx, key)
}

func (m *ReportCache) Set(ctx context.Context, key string, report domain.QuantityReport) error {
	return m.SetFunc(ctx, key, report)
}

func (m *ReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	return m.InvalidateCompanyFunc(ctx, companyID)
}
