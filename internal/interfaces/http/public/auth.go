package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
)

const maxAuthRequestBody = 4 * 1024

// authenticateHandler は資格情報を検証してアクセストークンを発行する。
func (h *Handler) authenticateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req authenticateRequest
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

		account, err := h.accounts.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			h.writeServiceError(w, err, "認証処理に失敗しました")
			return
		}

		token, expiresAt, err := h.issueToken(*account)
		if err != nil {
			h.logger.Errorw("トークンの発行に失敗", "error", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証処理に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, authenticateResponse{
			Token:     token,
			ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		})
	}
}

// issueToken は HS256 署名のアクセストークンを作る。
func (h *Handler) issueToken(account publicapp.AuthenticatedAccount) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(h.tokenTTL)

	claims := jwt.MapClaims{
		"sub":       account.UserID,
		"email":     account.Email,
		"companyId": account.CompanyID,
		"iss":       h.tokenIssuer,
		"aud":       h.tokenAudience,
		"iat":       issuedAt.Unix(),
		"exp":       expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.tokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
