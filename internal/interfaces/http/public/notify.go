package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// notifySignupVerification は認証コードをメッセンジャー経由で利用者へ届ける。
// 失敗してもリクエスト自体は成功扱いとし、再送用に失敗レコードを残す。
func (h *Handler) notifySignupVerification(ctx context.Context, email, code string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(h.messengerEndpoint) == "" {
		return
	}

	message := buildVerificationMessage(h.verifyBaseURL, code)
	err := h.sendMessengerWithRetry(ctx, h.messengerDest, email, message, 3, 200*time.Millisecond)
	if err == nil {
		return
	}
	if h.logger != nil {
		h.logger.Warnw("認証コード通知の送信に失敗", "email", email, "error", err)
	}
	h.persistNotificationFailure(ctx, email, code, err, 3)
}

func buildVerificationMessage(verifyBaseURL, code string) string {
	var builder strings.Builder
	builder.WriteString("ご登録ありがとうございます。\n")
	builder.WriteString("以下の認証コードでアカウントを有効化してください。\n")
	builder.WriteString("コード: " + code + "\n")
	if base := strings.TrimSpace(verifyBaseURL); base != "" {
		builder.WriteString(fmt.Sprintf("確認用URL: %s/%s\n", strings.TrimRight(base, "/"), code))
	}
	return builder.String()
}

func (h *Handler) sendMessengerWithRetry(ctx context.Context, destination, recipient, text string, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := h.sendMessengerMessage(ctx, destination, recipient, text); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return lastErr
}

// persistNotificationFailure は再送バッチが拾えるよう失敗を記録する。
func (h *Handler) persistNotificationFailure(ctx context.Context, email, code string, sendErr error, attempts int) {
	if h.failedNotifications == nil {
		return
	}
	doc := bson.M{
		"target": "signup_verification",
		"payload": bson.M{
			"email": email,
			"code":  code,
		},
		"error":       sendErr.Error(),
		"attempts":    attempts,
		"status":      "pending",
		"createdAt":   time.Now().UTC(),
		"lastTriedAt": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil && h.logger != nil {
		h.logger.Warnw("failed_notifications への保存に失敗", "error", err)
	}
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, recipient, bodyText string) error {
	trimmedRecipient := strings.TrimSpace(recipient)
	if trimmedRecipient == "" {
		return errors.New("recipient is required")
	}

	payload := map[string]any{
		"recipient": trimmedRecipient,
		"text":      bodyText,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	return nil
}
