package application

import (
	"context"
	"errors"

	admindomain "github.com/sngm3741/team-mood-services/api/internal/admin/domain"
)

// ErrCompanyNotFound indicates an unknown company domain.
var ErrCompanyNotFound = errors.New("company not found")

// ErrInvalidCommand marks a command rejected by value object validation.
var ErrInvalidCommand = errors.New("invalid command")

// ErrDomainTaken indicates the company domain is already registered.
var ErrDomainTaken = errors.New("company domain already registered")

// CompanyRepository exposes admin operations on companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *admindomain.Company) error
	FindByDomain(ctx context.Context, domain string) (*admindomain.Company, error)
	DeleteByID(ctx context.Context, id string) error
}

// UserRepository allows listing company members.
type UserRepository interface {
	FindEnabledByCompany(ctx context.Context, companyID string) ([]admindomain.User, error)
}

// RegisterCompanyCommand contains inputs for company registration.
type RegisterCompanyCommand struct {
	Name   string
	Domain string
}

// CompanyService describes admin company use-cases.
type CompanyService interface {
	Register(ctx context.Context, cmd RegisterCompanyCommand) (*admindomain.Company, error)
	DeleteByDomain(ctx context.Context, domain string) error
	UsersByDomain(ctx context.Context, domain string) ([]admindomain.User, error)
}
