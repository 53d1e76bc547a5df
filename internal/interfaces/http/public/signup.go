package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
)

// signupHandler はユーザー登録 API。認証コードの通知は非同期で行う。
func (h *Handler) signupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req signupRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxAuthRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("リクエストの形式が不正です: %v", err),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pending, err := h.accounts.Signup(ctx, publicapp.SignupCommand{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			h.writeServiceError(w, err, "ユーザー登録に失敗しました")
			return
		}

		go h.notifySignupVerification(context.Background(), pending.Email, pending.Code)

		common.WriteJSON(h.logger, w, http.StatusCreated, signupResponse{
			Status: "pending",
			Email:  pending.Email,
		})
	}
}

// signupVerifyHandler は認証コードを確定し、アカウントを有効化する。
func (h *Handler) signupVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "認証コードが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := h.accounts.Verify(ctx, code)
		if err != nil {
			h.writeServiceError(w, err, "アカウントの有効化に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, verifyResponse{
			Status: "ok",
			Email:  user.Email,
		})
	}
}
