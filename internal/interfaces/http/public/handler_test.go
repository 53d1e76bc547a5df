package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

type moodCommandsMock struct {
	SubmitFunc func(ctx context.Context, cmd publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error)
}

func (m *moodCommandsMock) Submit(ctx context.Context, cmd publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
	return m.SubmitFunc(ctx, cmd)
}

type moodQueriesMock struct {
	ListFunc func(ctx context.Context, companyID string, paging publicdomain.Paging, dateRange publicdomain.DateRange) (*publicapp.MoodPage, error)
}

func (m *moodQueriesMock) List(ctx context.Context, companyID string, paging publicdomain.Paging, dateRange publicdomain.DateRange) (*publicapp.MoodPage, error) {
	return m.ListFunc(ctx, companyID, paging, dateRange)
}

type reportsMock struct {
	QuantityFunc func(ctx context.Context, companyID string, dateRange publicdomain.DateRange) (*publicdomain.QuantityReport, error)
}

func (m *reportsMock) Quantity(ctx context.Context, companyID string, dateRange publicdomain.DateRange) (*publicdomain.QuantityReport, error) {
	return m.QuantityFunc(ctx, companyID, dateRange)
}

type accountsMock struct {
	SignupFunc       func(ctx context.Context, cmd publicapp.SignupCommand) (*publicdomain.PendingSignup, error)
	VerifyFunc       func(ctx context.Context, code string) (*publicdomain.UserRef, error)
	AuthenticateFunc func(ctx context.Context, email, password string) (*publicapp.AuthenticatedAccount, error)
}

func (m *accountsMock) Signup(ctx context.Context, cmd publicapp.SignupCommand) (*publicdomain.PendingSignup, error) {
	return m.SignupFunc(ctx, cmd)
}

func (m *accountsMock) Verify(ctx context.Context, code string) (*publicdomain.UserRef, error) {
	return m.VerifyFunc(ctx, code)
}

func (m *accountsMock) Authenticate(ctx context.Context, email, password string) (*publicapp.AuthenticatedAccount, error) {
	return m.AuthenticateFunc(ctx, email, password)
}

func newTestRouter(t *testing.T, cfg Config) chi.Router {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.TokenSecret == nil {
		cfg.TokenSecret = []byte("test-secret")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: time.Second}
	}

	handler := NewHandler(cfg)
	router := chi.NewRouter()
	handler.Register(router, stubAuthMiddleware)
	return router
}

func stubAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{
			ID:        "u1",
			Email:     "ana@nearsoft.com",
			CompanyID: "c1",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sampleView() *publicdomain.MoodView {
	return &publicdomain.MoodView{
		Mood: publicdomain.Mood{
			ID:        "m1",
			CompanyID: "c1",
			UserID:    "u1",
			Value:     publicdomain.MoodJoy,
			Comment:   "リリースがうまくいった",
			Source:    publicdomain.SourceWeb,
			CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		Company: "Nearsoft",
		User:    "ana@nearsoft.com",
	}
}

func TestMoodCreateHandler(t *testing.T) {
	t.Run("records mood for the authenticated user", func(t *testing.T) {
		var captured publicapp.SubmitMoodCommand
		router := newTestRouter(t, Config{
			MoodCommands: &moodCommandsMock{
				SubmitFunc: func(_ context.Context, cmd publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
					captured = cmd
					return sampleView(), nil
				},
			},
		})

		body := `{"mood":"joy","comment":"リリースがうまくいった","from":"slack"}`
		req := httptest.NewRequest(http.MethodPost, "/users/me/moods", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "c1", captured.CompanyID)
		assert.Equal(t, "u1", captured.UserID)
		assert.Equal(t, "joy", captured.Mood)
		assert.Equal(t, "slack", captured.Source)
		assert.Nil(t, captured.CreatedAt)

		var resp createMoodResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "m1", resp.Mood.ID)
		assert.Equal(t, "Nearsoft", resp.Mood.Company)
		assert.Equal(t, "ana@nearsoft.com", resp.Mood.User)
	})

	t.Run("anonymous submission drops the user reference", func(t *testing.T) {
		var captured publicapp.SubmitMoodCommand
		router := newTestRouter(t, Config{
			MoodCommands: &moodCommandsMock{
				SubmitFunc: func(_ context.Context, cmd publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
					captured = cmd
					view := sampleView()
					view.Mood.UserID = ""
					view.User = ""
					return view, nil
				},
			},
		})

		body := `{"mood":"tired","comment":"障害対応で一日が終わった","anonymous":true}`
		req := httptest.NewRequest(http.MethodPost, "/users/me/moods", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Empty(t, captured.UserID)
		assert.NotContains(t, rec.Body.String(), `"user"`)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		router := newTestRouter(t, Config{
			MoodCommands: &moodCommandsMock{
				SubmitFunc: func(_ context.Context, _ publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
					return nil, publicapp.NewValidationError("invalid mood value")
				},
			},
		})

		body := `{"mood":"ecstatic","comment":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/users/me/moods", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed createdAt maps to 400", func(t *testing.T) {
		router := newTestRouter(t, Config{
			MoodCommands: &moodCommandsMock{
				SubmitFunc: func(_ context.Context, _ publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
					t.Fatal("service must not be reached")
					return nil, nil
				},
			},
		})

		body := `{"mood":"joy","comment":"x","createdAt":"2026/01/01"}`
		req := httptest.NewRequest(http.MethodPost, "/users/me/moods", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		router := newTestRouter(t, Config{
			MoodCommands: &moodCommandsMock{
				SubmitFunc: func(_ context.Context, _ publicapp.SubmitMoodCommand) (*publicdomain.MoodView, error) {
					return nil, &publicapp.StoreError{Op: "create mood", Err: context.DeadlineExceeded}
				},
			},
		})

		body := `{"mood":"joy","comment":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/users/me/moods", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMoodListHandler(t *testing.T) {
	t.Run("returns the requested page with pagination metadata", func(t *testing.T) {
		var capturedPage publicdomain.Paging
		router := newTestRouter(t, Config{
			MoodQueries: &moodQueriesMock{
				ListFunc: func(_ context.Context, companyID string, paging publicdomain.Paging, _ publicdomain.DateRange) (*publicapp.MoodPage, error) {
					assert.Equal(t, "c1", companyID)
					capturedPage = paging
					return &publicapp.MoodPage{
						Moods:      []publicdomain.MoodView{*sampleView()},
						Page:       2,
						PageCount:  3,
						TotalItems: 65,
					}, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me/companies/moods?page=2", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, capturedPage.Page)

		var resp moodListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, int64(65), resp.Pagination.TotalItems)
	})

	t.Run("forwards the date range filter", func(t *testing.T) {
		var captured publicdomain.DateRange
		router := newTestRouter(t, Config{
			MoodQueries: &moodQueriesMock{
				ListFunc: func(_ context.Context, _ string, _ publicdomain.Paging, dateRange publicdomain.DateRange) (*publicapp.MoodPage, error) {
					captured = dateRange
					return &publicapp.MoodPage{Moods: []publicdomain.MoodView{}, Page: 1}, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me/companies/moods?from=2026-03-01&to=2026-03-31", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, captured.Enabled())
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), captured.From)
	})

	t.Run("rejects a one-sided date range", func(t *testing.T) {
		router := newTestRouter(t, Config{
			MoodQueries: &moodQueriesMock{
				ListFunc: func(_ context.Context, _ string, _ publicdomain.Paging, _ publicdomain.DateRange) (*publicapp.MoodPage, error) {
					t.Fatal("service must not be reached")
					return nil, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me/companies/moods?from=2026-03-01", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportQuantityHandler(t *testing.T) {
	t.Run("returns mood totals for the company", func(t *testing.T) {
		report := publicdomain.QuantityReport{
			TotalUsers: 10,
			Moods: []publicdomain.MoodTotal{
				{Mood: publicdomain.MoodJoy, Total: 4},
				{Mood: publicdomain.MoodNormal, Total: 6},
			},
		}
		router := newTestRouter(t, Config{
			Reports: &reportsMock{
				QuantityFunc: func(_ context.Context, companyID string, _ publicdomain.DateRange) (*publicdomain.QuantityReport, error) {
					assert.Equal(t, "c1", companyID)
					return &report, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me/companies/reports/quantity", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp publicdomain.QuantityReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, report, resp)
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Reports: &reportsMock{
				QuantityFunc: func(_ context.Context, _ string, _ publicdomain.DateRange) (*publicdomain.QuantityReport, error) {
					t.Fatal("service must not be reached")
					return nil, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me/companies/reports/quantity?from=2026-04-01&to=2026-03-01", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthenticateHandler(t *testing.T) {
	t.Run("issues a signed token with account claims", func(t *testing.T) {
		secret := []byte("handler-secret")
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				AuthenticateFunc: func(_ context.Context, email, password string) (*publicapp.AuthenticatedAccount, error) {
					assert.Equal(t, "ana@nearsoft.com", email)
					assert.Equal(t, "password123", password)
					return &publicapp.AuthenticatedAccount{UserID: "u1", Email: email, CompanyID: "c1"}, nil
				},
			},
			TokenSecret:   secret,
			TokenIssuer:   "team-mood-api",
			TokenAudience: "team-mood-clients",
		})

		body := `{"email":"ana@nearsoft.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/authenticate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp authenticateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(_ *jwt.Token) (any, error) {
			return secret, nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		assert.Equal(t, "u1", claims["sub"])
		assert.Equal(t, "c1", claims["companyId"])
		assert.Equal(t, "team-mood-api", claims["iss"])
	})

	t.Run("wrong credentials map to 401", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				AuthenticateFunc: func(_ context.Context, _, _ string) (*publicapp.AuthenticatedAccount, error) {
					return nil, publicapp.ErrInvalidCredentials
				},
			},
		})

		body := `{"email":"ana@nearsoft.com","password":"nope"}`
		req := httptest.NewRequest(http.MethodPost, "/authenticate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSignupHandlers(t *testing.T) {
	t.Run("signup responds pending", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				SignupFunc: func(_ context.Context, cmd publicapp.SignupCommand) (*publicdomain.PendingSignup, error) {
					assert.Equal(t, "ana@nearsoft.com", cmd.Email)
					return &publicdomain.PendingSignup{Code: "code-1", Email: "ana@nearsoft.com", CompanyID: "c1"}, nil
				},
			},
		})

		body := `{"email":"ana@nearsoft.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp signupResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "ana@nearsoft.com", resp.Email)
	})

	t.Run("signup with unknown company domain maps to 404", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				SignupFunc: func(_ context.Context, _ publicapp.SignupCommand) (*publicdomain.PendingSignup, error) {
					return nil, publicapp.NewNotFoundError("no company matches that email domain")
				},
			},
		})

		body := `{"email":"ana@unknown.io","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("verify activates the pending account", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				VerifyFunc: func(_ context.Context, code string) (*publicdomain.UserRef, error) {
					assert.Equal(t, "code-1", code)
					return &publicdomain.UserRef{ID: "u1", Email: "ana@nearsoft.com"}, nil
				},
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/signup/code-1/verify", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp verifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ana@nearsoft.com", resp.Email)
	})

	t.Run("verify with unknown code maps to 404", func(t *testing.T) {
		router := newTestRouter(t, Config{
			Accounts: &accountsMock{
				VerifyFunc: func(_ context.Context, _ string) (*publicdomain.UserRef, error) {
					return nil, publicapp.NewNotFoundError("no pending signup matches that code")
				},
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/signup/unknown/verify", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMeHandler(t *testing.T) {
	router := newTestRouter(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@nearsoft.com")
}
