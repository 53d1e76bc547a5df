package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/team-mood-services/api/internal/admin/application"
	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
)

const maxCompanyRequestBody = 4 * 1024

// companyCreateHandler は会社(テナント)の登録 API。
func (h *Handler) companyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req createCompanyRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxCompanyRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("リクエストの形式が不正です: %v", err),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		company, err := h.companies.Register(ctx, adminapp.RegisterCompanyCommand{
			Name:   req.Name,
			Domain: req.Domain,
		})
		if err != nil {
			if errors.Is(err, adminapp.ErrDomainTaken) {
				common.WriteJSON(h.logger, w, http.StatusConflict, map[string]string{"error": "このドメインは既に登録されています"})
				return
			}
			h.writeCompanyError(w, err, "会社の登録に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildCompanyResponse(*company))
	}
}

// companyDeleteHandler はドメイン指定で会社を削除する。
func (h *Handler) companyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := strings.TrimSpace(chi.URLParam(r, "domain"))
		if domain == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "ドメインが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.companies.DeleteByDomain(ctx, domain); err != nil {
			h.writeCompanyError(w, err, "会社の削除に失敗しました")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// companyUsersHandler は会社に所属する有効ユーザーの一覧を返す。
func (h *Handler) companyUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := strings.TrimSpace(chi.URLParam(r, "domain"))
		if domain == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "ドメインが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		users, err := h.companies.UsersByDomain(ctx, domain)
		if err != nil {
			h.writeCompanyError(w, err, "ユーザー一覧の取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildCompanyUserListResponse(users))
	}
}

func (h *Handler) writeCompanyError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, adminapp.ErrCompanyNotFound) {
		common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "指定されたドメインの会社が見つかりません"})
		return
	}
	if errors.Is(err, adminapp.ErrInvalidCommand) {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.logger.Errorw(fallback, "error", err)
	common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": fallback})
}
