package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sngm3741/team-mood-services/api/internal/public/application"
	"github.com/sngm3741/team-mood-services/api/internal/public/application/mocks"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

func accountFixtures() (*mocks.AccountRepository, *mocks.PendingSignupRepository, *mocks.CompanyDirectory) {
	accounts := &mocks.AccountRepository{
		FindByEmailFunc: func(_ context.Context, _ string) (*domain.UserAccount, error) {
			return nil, nil
		},
		CreateFunc: func(_ context.Context, account *domain.UserAccount) error {
			account.ID = "user-1"
			return nil
		},
	}
	pending := &mocks.PendingSignupRepository{
		CreateFunc: func(_ context.Context, _ *domain.PendingSignup) error { return nil },
		DeleteFunc: func(_ context.Context, _ string) error { return nil },
	}
	companies := &mocks.CompanyDirectory{
		FindByDomainFunc: func(_ context.Context, domainName string) (*domain.CompanyRef, error) {
			if domainName == "@nearsoft.com" {
				return &domain.CompanyRef{ID: "c1", Name: "Nearsoft", Domain: "@nearsoft.com"}, nil
			}
			return nil, nil
		},
	}
	return accounts, pending, companies
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending signup for a known domain", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		var created *domain.PendingSignup
		pending.CreateFunc = func(_ context.Context, signup *domain.PendingSignup) error {
			created = signup
			return nil
		}
		service := application.NewAccountService(accounts, pending, companies)

		signup, err := service.Signup(ctx, application.SignupCommand{
			Email:    "Ana.Lopez@Nearsoft.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "ana.lopez@nearsoft.com", signup.Email)
		assert.Equal(t, "c1", signup.CompanyID)
		assert.NotEmpty(t, signup.Code)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(signup.PasswordHash), []byte("correct horse")))
	})

	t.Run("unknown domain yields not found", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		service := application.NewAccountService(accounts, pending, companies)

		_, err := service.Signup(ctx, application.SignupCommand{Email: "bob@unknown.io", Password: "long enough"})
		var nfErr *application.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		service := application.NewAccountService(accounts, pending, companies)

		var vErr *application.ValidationError
		_, err := service.Signup(ctx, application.SignupCommand{Email: "not-an-email", Password: "long enough"})
		assert.ErrorAs(t, err, &vErr)

		_, err = service.Signup(ctx, application.SignupCommand{Email: "ana@nearsoft.com", Password: "short"})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects an already registered email", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		accounts.FindByEmailFunc = func(_ context.Context, _ string) (*domain.UserAccount, error) {
			return &domain.UserAccount{ID: "user-1"}, nil
		}
		service := application.NewAccountService(accounts, pending, companies)

		var vErr *application.ValidationError
		_, err := service.Signup(ctx, application.SignupCommand{Email: "ana@nearsoft.com", Password: "long enough"})
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the pending signup to an enabled account", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		pending.FindByCodeFunc = func(_ context.Context, code string) (*domain.PendingSignup, error) {
			return &domain.PendingSignup{Code: code, Email: "ana@nearsoft.com", PasswordHash: "hash", CompanyID: "c1"}, nil
		}
		var createdAccount *domain.UserAccount
		accounts.CreateFunc = func(_ context.Context, account *domain.UserAccount) error {
			account.ID = "user-1"
			createdAccount = account
			return nil
		}
		deleted := ""
		pending.DeleteFunc = func(_ context.Context, code string) error {
			deleted = code
			return nil
		}
		service := application.NewAccountService(accounts, pending, companies)

		user, err := service.Verify(ctx, "code-123")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "ana@nearsoft.com", user.Email)
		require.NotNil(t, createdAccount)
		assert.True(t, createdAccount.Enabled)
		assert.Equal(t, "code-123", deleted)
	})

	t.Run("unknown code yields not found", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		pending.FindByCodeFunc = func(_ context.Context, _ string) (*domain.PendingSignup, error) {
			return nil, nil
		}
		service := application.NewAccountService(accounts, pending, companies)

		_, err := service.Verify(ctx, "missing")
		var nfErr *application.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &domain.UserAccount{
		ID:           "user-1",
		Email:        "ana@nearsoft.com",
		PasswordHash: string(hash),
		CompanyID:    "c1",
		Enabled:      true,
	}

	t.Run("valid credentials", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		accounts.FindByEmailFunc = func(_ context.Context, email string) (*domain.UserAccount, error) {
			assert.Equal(t, "ana@nearsoft.com", email)
			return account, nil
		}
		service := application.NewAccountService(accounts, pending, companies)

		authed, err := service.Authenticate(ctx, "Ana@Nearsoft.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "user-1", authed.UserID)
		assert.Equal(t, "c1", authed.CompanyID)
	})

	t.Run("wrong password, unknown email and disabled account are indistinguishable", func(t *testing.T) {
		accounts, pending, companies := accountFixtures()
		disabled := *account
		disabled.Enabled = false

		cases := []struct {
			account  *domain.UserAccount
			password string
		}{
			{account, "wrong"},
			{nil, "correct horse"},
			{&disabled, "correct horse"},
		}
		for _, tc := range cases {
			accounts.FindByEmailFunc = func(_ context.Context, _ string) (*domain.UserAccount, error) {
				return tc.account, nil
			}
			service := application.NewAccountService(accounts, pending, companies)
			_, err := service.Authenticate(ctx, "ana@nearsoft.com", tc.password)
			assert.ErrorIs(t, err, application.ErrInvalidCredentials)
		}
	})
}
