package public

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

const dateParamLayout = "2006-01-02"

// parseDateRange は from/to クエリパラメータを期間指定へ変換する。
// 片方だけの指定は形式不正として扱う。
func parseDateRange(query map[string][]string) (publicdomain.DateRange, error) {
	fromParam := strings.TrimSpace(firstQueryValue(query, "from"))
	toParam := strings.TrimSpace(firstQueryValue(query, "to"))
	if fromParam == "" && toParam == "" {
		return publicdomain.DateRange{}, nil
	}
	if fromParam == "" || toParam == "" {
		return publicdomain.DateRange{}, errors.New("集計期間は from と to の両方を指定してください")
	}

	from, err := time.Parse(dateParamLayout, fromParam)
	if err != nil {
		return publicdomain.DateRange{}, fmt.Errorf("from の形式が不正です (YYYY-MM-DD): %s", fromParam)
	}
	to, err := time.Parse(dateParamLayout, toParam)
	if err != nil {
		return publicdomain.DateRange{}, fmt.Errorf("to の形式が不正です (YYYY-MM-DD): %s", toParam)
	}
	if to.Before(from) {
		return publicdomain.DateRange{}, errors.New("to は from 以降の日付を指定してください")
	}
	return publicdomain.DateRange{From: from, To: to}, nil
}

func firstQueryValue(query map[string][]string, key string) string {
	values := query[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// writeServiceError はアプリケーション層のエラーを HTTP ステータスへ写像する。
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *publicapp.ValidationError
	if errors.As(err, &validationErr) {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
		return
	}

	var notFoundErr *publicapp.NotFoundError
	if errors.As(err, &notFoundErr) {
		common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": notFoundErr.Error()})
		return
	}

	if errors.Is(err, publicapp.ErrInvalidCredentials) {
		common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "メールアドレスまたはパスワードが正しくありません"})
		return
	}

	h.logger.Errorw(fallback, "error", err)
	common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": fallback})
}
