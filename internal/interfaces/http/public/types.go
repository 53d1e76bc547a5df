package public

import (
	"time"

	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

type moodResponse struct {
	ID        string `json:"id"`
	Mood      string `json:"mood"`
	Comment   string `json:"comment"`
	From      string `json:"from"`
	Company   string `json:"company"`
	User      string `json:"user,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type paginationResponse struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

type moodListResponse struct {
	Items      []moodResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type quantityReportResponse = publicdomain.QuantityReport

type createMoodRequest struct {
	Mood      string `json:"mood"`
	Comment   string `json:"comment"`
	From      string `json:"from,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type createMoodResponse struct {
	Status string       `json:"status"`
	Mood   moodResponse `json:"mood"`
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authenticateResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type verifyResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// buildMoodResponse は表示用モデルをレスポンス DTO へ変換する。
func buildMoodResponse(view publicdomain.MoodView) moodResponse {
	return moodResponse{
		ID:        view.Mood.ID,
		Mood:      view.Mood.Value.String(),
		Comment:   view.Mood.Comment,
		From:      view.Mood.Source.String(),
		Company:   view.Company,
		User:      view.User,
		CreatedAt: view.Mood.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func buildMoodListResponse(page *publicapp.MoodPage) moodListResponse {
	items := make([]moodResponse, 0, len(page.Moods))
	for _, view := range page.Moods {
		items = append(items, buildMoodResponse(view))
	}
	return moodListResponse{
		Items: items,
		Pagination: paginationResponse{
			Page:       page.Page,
			TotalPages: page.PageCount,
			TotalItems: page.TotalItems,
		},
	}
}
