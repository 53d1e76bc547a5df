package admin

import (
	"time"

	admindomain "github.com/sngm3741/team-mood-services/api/internal/admin/domain"
)

type createCompanyRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

type companyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	CreatedAt string `json:"createdAt"`
}

type companyUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
}

type companyUserListResponse struct {
	Items []companyUserResponse `json:"items"`
	Total int                   `json:"total"`
}

// buildCompanyResponse はドメインの Company を Admin レスポンスへ変換する。
func buildCompanyResponse(company admindomain.Company) companyResponse {
	return companyResponse{
		ID:        company.ID,
		Name:      company.Name,
		Domain:    company.Domain.String(),
		CreatedAt: company.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func buildCompanyUserListResponse(users []admindomain.User) companyUserListResponse {
	items := make([]companyUserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, companyUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Enabled:   user.Enabled,
			CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return companyUserListResponse{Items: items, Total: len(items)}
}
