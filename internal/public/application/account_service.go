package application

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type accountService struct {
	accounts  AccountRepository
	pending   PendingSignupRepository
	companies CompanyDirectory
}

// NewAccountService constructs the signup/verification/authentication service.
func NewAccountService(accounts AccountRepository, pending PendingSignupRepository, companies CompanyDirectory) AccountService {
	return &accountService{accounts: accounts, pending: pending, companies: companies}
}

// Signup はメールアドレスのドメインから会社を引き当て、確認コード付きの仮登録を作る。
// コードの配送(メッセンジャーゲートウェイ)は HTTP 層の責務。
func (s *accountService) Signup(ctx context.Context, cmd SignupCommand) (*domain.PendingSignup, error) {
	email, err := normalizeEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, wrapStoreError("find account by email", err)
	}
	if existing != nil {
		return nil, NewValidationError("email is already registered")
	}

	company, err := s.companies.FindByDomain(ctx, emailDomain(email))
	if err != nil {
		return nil, wrapStoreError("find company by domain", err)
	}
	if company == nil {
		return nil, NewNotFoundError("no company is registered for that email domain")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewValidationError("password could not be processed")
	}

	signup := &domain.PendingSignup{
		Code:         uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CompanyID:    company.ID,
	}
	if err := s.pending.Create(ctx, signup); err != nil {
		return nil, wrapStoreError("create pending signup", err)
	}
	return signup, nil
}

// Verify は確認コードを消費して有効なユーザーアカウントを作る。
func (s *accountService) Verify(ctx context.Context, code string) (*domain.UserRef, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, NewValidationError("verification code is required")
	}

	signup, err := s.pending.FindByCode(ctx, code)
	if err != nil {
		return nil, wrapStoreError("find pending signup", err)
	}
	if signup == nil {
		return nil, NewNotFoundError("no pending signup exists with that code")
	}

	account := &domain.UserAccount{
		Email:        signup.Email,
		PasswordHash: signup.PasswordHash,
		CompanyID:    signup.CompanyID,
		Enabled:      true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, wrapStoreError("create account", err)
	}

	// 仮登録の削除が失敗しても検証自体は成立している。補償処理は行わない。
	if err := s.pending.Delete(ctx, code); err != nil {
		return nil, wrapStoreError("delete pending signup", err)
	}

	return &domain.UserRef{ID: account.ID, Email: account.Email}, nil
}

// Authenticate はメールアドレスとパスワードを突き合わせる。
// 失敗理由は区別せず ErrInvalidCredentials を返す。
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*AuthenticatedAccount, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, wrapStoreError("find account by email", err)
	}
	if account == nil || !account.Enabled {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthenticatedAccount{
		UserID:    account.ID,
		Email:     account.Email,
		CompanyID: account.CompanyID,
	}, nil
}

func normalizeEmail(value string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", NewValidationError("email is not valid")
	}
	return trimmed, nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at:]
}
