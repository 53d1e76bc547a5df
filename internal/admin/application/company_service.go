package application

import (
	"context"
	"fmt"

	admindomain "github.com/sngm3741/team-mood-services/api/internal/admin/domain"
)

type companyService struct {
	companies CompanyRepository
	users     UserRepository
}

// NewCompanyService constructs the admin company service.
func NewCompanyService(companies CompanyRepository, users UserRepository) CompanyService {
	return &companyService{companies: companies, users: users}
}

// Register は会社名とドメインを検証し、新しいテナントを登録する。
// ドメインの重複チェックと登録は別々のストア往復で、トランザクションではない。
func (s *companyService) Register(ctx context.Context, cmd RegisterCompanyCommand) (*admindomain.Company, error) {
	name, err := admindomain.NewCompanyName(cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	domain, err := admindomain.NewCompanyDomain(cmd.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	existing, err := s.companies.FindByDomain(ctx, domain.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDomainTaken
	}

	company := &admindomain.Company{
		Name:   name.String(),
		Domain: domain,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) DeleteByDomain(ctx context.Context, domainName string) error {
	company, err := s.findByDomain(ctx, domainName)
	if err != nil {
		return err
	}
	return s.companies.DeleteByID(ctx, company.ID)
}

func (s *companyService) UsersByDomain(ctx context.Context, domainName string) ([]admindomain.User, error) {
	company, err := s.findByDomain(ctx, domainName)
	if err != nil {
		return nil, err
	}
	return s.users.FindEnabledByCompany(ctx, company.ID)
}

func (s *companyService) findByDomain(ctx context.Context, domainName string) (*admindomain.Company, error) {
	domain, err := admindomain.NewCompanyDomain(domainName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	company, err := s.companies.FindByDomain(ctx, domain.String())
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}
