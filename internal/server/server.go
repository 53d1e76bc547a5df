package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/team-mood-services/api/internal/admin/application"
	"github.com/sngm3741/team-mood-services/api/internal/config"
	rediscache "github.com/sngm3741/team-mood-services/api/internal/infrastructure/cache"
	mongodoc "github.com/sngm3741/team-mood-services/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/team-mood-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/team-mood-services/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/team-mood-services/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/team-mood-services/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
// DDD の Interface 層に相当し、アプリケーションサービスをルータへ接続する責務を担う。
type Server struct {
	logger               *zap.SugaredLogger
	client               *mongo.Client
	redis                *redis.Client
	database             *mongo.Database
	failedNotifications  *mongo.Collection
	moodCommandService   publicapp.MoodCommandService
	moodQueryService     publicapp.MoodQueryService
	reportService        publicapp.ReportService
	accountService       publicapp.AccountService
	adminCompanyService  adminapp.CompanyService
	jwtSecret            []byte
	jwtIssuer            string
	jwtAudience          string
	tokenTTL             time.Duration
	httpClient           *http.Client
	messengerEndpoint    string
	messengerDestination string
	verifyBaseURL        string
	addr                 string
	allowedOrigins       []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// Run はHTTPサーバーを起動し、Public/Adminのルーティングやミドルウェアを組み立てる。
// インフラ初期化に限定し、ドメインロジックをここに書かないことで層の責務を守る。
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:              s.logger,
		MoodCommands:        s.moodCommandService,
		MoodQueries:         s.moodQueryService,
		Reports:             s.reportService,
		Accounts:            s.accountService,
		TokenSecret:         s.jwtSecret,
		TokenIssuer:         s.jwtIssuer,
		TokenAudience:       s.jwtAudience,
		TokenTTL:            s.tokenTTL,
		HTTPClient:          s.httpClient,
		MessengerEndpoint:   s.messengerEndpoint,
		MessengerDest:       s.messengerDestination,
		VerifyBaseURL:       s.verifyBaseURL,
		FailedNotifications: s.failedNotifications,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:    s.logger,
		Companies: s.adminCompanyService,
	})
	router.Route("/admin", adminHandler.Register)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP サーバー起動", "addr", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB / Redis への疎通確認を行い、監視系からのヘルスチェック要求に応える。
// ドメインの状態ではなくインフラ状態のみを返す設計。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		if s.redis != nil {
			if err := s.redis.Ping(ctx).Err(); err != nil {
				s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、認証済みユーザーをコンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization ヘッダーがありません"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Bearer トークンを指定してください"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "アクセストークンが空です"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:        claims.Subject,
			Email:     claims.Email,
			CompanyID: claims.CompanyID,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は署名検証と Issuer/Audience の整合性を確認する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}

	if s.jwtIssuer != "" && claims.Issuer != s.jwtIssuer {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}
	if claims.Subject == "" || claims.CompanyID == "" {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}
	if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}

	return claims, nil
}

// contains は Audience 等の検証で利用する単純な包含チェック。
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warnw("JSON エンコードに失敗", "error", err)
	}
}

// shutdown は MongoDB / Redis をタイムアウト付きで切断し、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Warnw("MongoDB 切断時にエラー", "error", err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warnw("Redis 切断時にエラー", "error", err)
		}
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalw("サーバーが異常終了", "error", err)
		}
	case sig := <-sigChan:
		srv.logger.Infow("シグナルを受信。サーバー停止処理を開始します", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Warnw("サーバー停止時にエラー", "error", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と各クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// 依存解決の起点となるファクトリとして機能する。redisClient は nil 可(キャッシュ無効)。
func New(cfg config.Config, client *mongo.Client, redisClient *redis.Client) *Server {
	srv := &Server{
		logger:               cfg.Logger,
		client:               client,
		redis:                redisClient,
		database:             client.Database(cfg.MongoDatabase),
		jwtSecret:            append([]byte(nil), cfg.JWTSecret...),
		jwtIssuer:            cfg.JWTIssuer,
		jwtAudience:          cfg.JWTAudience,
		tokenTTL:             cfg.TokenTTL,
		httpClient:           &http.Client{Timeout: cfg.MessengerTimeout},
		messengerEndpoint:    strings.TrimRight(strings.TrimSpace(cfg.MessengerEndpoint), "/"),
		messengerDestination: cfg.MessengerDestination,
		verifyBaseURL:        cfg.VerifyBaseURL,
		addr:                 cfg.Addr,
		allowedOrigins:       append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.failedNotifications = srv.database.Collection(cfg.FailedNotificationCollection)

	moodRepo := mongodoc.NewMoodRepository(srv.database, cfg.MoodCollection)
	companyDir := mongodoc.NewCompanyDirectory(srv.database, cfg.CompanyCollection)
	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	pendingRepo := mongodoc.NewPendingSignupRepository(srv.database, cfg.PendingUserCollection)

	var reportCache publicapp.ReportCache
	if redisClient != nil {
		reportCache = rediscache.NewReportCache(redisClient, cfg.ReportCacheTTL)
	}

	srv.moodCommandService = publicapp.NewMoodCommandService(moodRepo, companyDir, userRepo, reportCache, cfg.Logger, cfg.AllowCreatedAtOverride)
	srv.moodQueryService = publicapp.NewMoodQueryService(moodRepo, companyDir, userRepo)
	srv.reportService = publicapp.NewReportService(moodRepo, userRepo, reportCache, cfg.Logger)
	srv.accountService = publicapp.NewAccountService(userRepo, pendingRepo, companyDir)

	adminCompanyRepo := mongodoc.NewAdminCompanyRepository(srv.database, cfg.CompanyCollection)
	adminUserRepo := mongodoc.NewAdminUserRepository(srv.database, cfg.UserCollection)
	srv.adminCompanyService = adminapp.NewCompanyService(adminCompanyRepo, adminUserRepo)

	return srv
}
