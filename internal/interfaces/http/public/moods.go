package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

const maxMoodRequestBody = 16 * 1024

// moodCreateHandler は気分投稿 API。匿名指定時はユーザー参照を残さない。
func (h *Handler) moodCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		defer r.Body.Close()

		var req createMoodRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxMoodRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("リクエストの形式が不正です: %v", err),
			})
			return
		}

		cmd := publicapp.SubmitMoodCommand{
			CompanyID: user.CompanyID,
			Mood:      req.Mood,
			Comment:   req.Comment,
			Source:    req.From,
		}
		if !req.Anonymous {
			cmd.UserID = user.ID
		}
		if createdAt := strings.TrimSpace(req.CreatedAt); createdAt != "" {
			parsed, err := time.Parse(time.RFC3339, createdAt)
			if err != nil {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "createdAt の形式が不正です (RFC3339)"})
				return
			}
			cmd.CreatedAt = &parsed
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		view, err := h.moodCommands.Submit(ctx, cmd)
		if err != nil {
			h.writeServiceError(w, err, "気分の記録に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, createMoodResponse{
			Status: "ok",
			Mood:   buildMoodResponse(*view),
		})
	}
}

// moodListHandler は所属会社の気分一覧 API。新しい順に1ページ30件で返す。
func (h *Handler) moodListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		paging := publicdomain.NewPaging(page)

		dateRange, err := parseDateRange(query)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		moodPage, err := h.moodQueries.List(ctx, user.CompanyID, paging, dateRange)
		if err != nil {
			h.writeServiceError(w, err, "気分一覧の取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildMoodListResponse(moodPage))
	}
}

// reportQuantityHandler は会社単位の気分集計レポート API。
func (h *Handler) reportQuantityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		dateRange, err := parseDateRange(r.URL.Query())
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := h.reports.Quantity(ctx, user.CompanyID, dateRange)
		if err != nil {
			h.writeServiceError(w, err, "集計レポートの取得に失敗しました")
			return
		}

		var payload quantityReportResponse = *report
		common.WriteJSON(h.logger, w, http.StatusOK, payload)
	}
}

// meHandler は認証済みユーザー自身の情報を返す。
func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
