package public

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger              *zap.SugaredLogger
	moodCommands        publicapp.MoodCommandService
	moodQueries         publicapp.MoodQueryService
	reports             publicapp.ReportService
	accounts            publicapp.AccountService
	tokenSecret         []byte
	tokenIssuer         string
	tokenAudience       string
	tokenTTL            time.Duration
	httpClient          *http.Client
	messengerEndpoint   string
	messengerDest       string
	verifyBaseURL       string
	failedNotifications *mongo.Collection
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger              *zap.SugaredLogger
	MoodCommands        publicapp.MoodCommandService
	MoodQueries         publicapp.MoodQueryService
	Reports             publicapp.ReportService
	Accounts            publicapp.AccountService
	TokenSecret         []byte
	TokenIssuer         string
	TokenAudience       string
	TokenTTL            time.Duration
	HTTPClient          *http.Client
	MessengerEndpoint   string
	MessengerDest       string
	VerifyBaseURL       string
	FailedNotifications *mongo.Collection
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:              cfg.Logger,
		moodCommands:        cfg.MoodCommands,
		moodQueries:         cfg.MoodQueries,
		reports:             cfg.Reports,
		accounts:            cfg.Accounts,
		tokenSecret:         cfg.TokenSecret,
		tokenIssuer:         cfg.TokenIssuer,
		tokenAudience:       cfg.TokenAudience,
		tokenTTL:            cfg.TokenTTL,
		httpClient:          cfg.HTTPClient,
		messengerEndpoint:   cfg.MessengerEndpoint,
		messengerDest:       cfg.MessengerDest,
		verifyBaseURL:       cfg.VerifyBaseURL,
		failedNotifications: cfg.FailedNotifications,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/authenticate", h.authenticateHandler())
	r.Post("/signup", h.signupHandler())
	r.Post("/signup/{code}/verify", h.signupVerifyHandler())
	r.With(authMiddleware).Get("/users/me", h.meHandler())
	r.With(authMiddleware).Post("/users/me/moods", h.moodCreateHandler())
	r.With(authMiddleware).Get("/users/me/companies/moods", h.moodListHandler())
	r.With(authMiddleware).Get("/users/me/companies/reports/quantity", h.reportQuantityHandler())
}
