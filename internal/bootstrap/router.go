package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/constructerp/erp-backend/config"
	httpapi "github.com/constructerp/erp-backend/internal/api/http"
	"github.com/constructerp/erp-backend/internal/api/http/middleware"
	"github.com/constructerp/erp-backend/internal/audit"
	authhttp "github.com/constructerp/erp-backend/internal/auth/http"
	authmw "github.com/constructerp/erp-backend/internal/auth/middleware"
	authrepo "github.com/constructerp/erp-backend/internal/auth/repository"
	"github.com/constructerp/erp-backend/internal/auth/session"
	authservice "github.com/constructerp/erp-backend/internal/auth/service"
	"github.com/constructerp/erp-backend/internal/customers"
	"github.com/constructerp/erp-backend/internal/dashboard"
	"github.com/constructerp/erp-backend/internal/exchange"
	"github.com/constructerp/erp-backend/internal/insights"
	insightshttp "github.com/constructerp/erp-backend/internal/insights/http"
	"github.com/constructerp/erp-backend/internal/invoices"
	"github.com/constructerp/erp-backend/internal/ledger"
	"github.com/constructerp/erp-backend/internal/payments"
	"github.com/constructerp/erp-backend/internal/projects"
	"github.com/constructerp/erp-backend/internal/users"
	"github.com/constructerp/erp-backend/internal/vendors"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// The SPA sends the session cookie cross-origin, so credentials must be
	// allowed and the origin pinned.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	// Auth plumbing.
	sessions := session.NewStore(dep.Redis, dep.Cfg.Auth.SessionTTL)
	userRepo := authrepo.NewUserRepo(dep.DB)
	authSvc := authservice.NewService(userRepo, sessions, dep.Cfg.Auth.JWTSecret, dep.Cfg.Auth.SessionTTL)
	gate := authmw.RequireSession(authSvc, dep.Cfg.Auth.CookieName)
	loginLimiter := middleware.PerIPRateLimit(rate.Every(time.Second), 5)

	authHandler := authhttp.NewHandler(authSvc, dep.Cfg.Auth.CookieName, dep.Cfg.Auth.CookieSecure)
	authHandler.Register(r.Group("/auth"), gate, loginLimiter)

	// Repositories.
	auditRepo := audit.NewRepo(dep.SQLDB)
	projectRepo := projects.NewRepo(dep.DB)
	invoiceRepo := invoices.NewRepo(dep.DB)
	vendorRepo := vendors.NewRepo(dep.DB)
	customerRepo := customers.NewRepo(dep.DB)
	paymentRepo := payments.NewRepo(dep.DB)
	exchangeRepo := exchange.NewRepo(dep.SQLDB)
	accountRepo := ledger.NewAccountRepo(dep.SQLDB)
	journalRepo := ledger.NewJournalRepo(dep.SQLDB)
	userListRepo := users.NewRepo(dep.DB)
	dashboardRepo := dashboard.NewRepo(dep.DB)

	// Insights core.
	var forecast insights.ForecastProvider = insights.StaticForecast{}
	if dep.Cfg.Insights.Forecast == "trailing" {
		forecast = &insights.CachedForecast{
			Store:    insights.NewSnapshotStore(dep.Redis),
			Fallback: insights.NewTrailingAverageForecast(paymentRepo),
		}
	}
	insightsSvc := insights.NewService(projectRepo, forecast)

	// Everything below the gate requires a valid session cookie.
	authed := r.Group("/")
	authed.Use(gate)

	projects.Register(authed.Group("/projects"), projectRepo, auditRepo)
	invoices.Register(authed.Group("/invoices"), invoiceRepo, auditRepo)
	vendors.Register(authed.Group("/vendors"), vendorRepo)
	customers.Register(authed.Group("/customers"), customerRepo)
	payments.Register(authed.Group("/payments"), paymentRepo)
	exchange.Register(authed.Group("/exchange"), exchangeRepo, auditRepo)
	ledger.Register(authed.Group("/accounts"), authed.Group("/journal"), accountRepo, journalRepo, auditRepo)
	audit.RegisterRoutes(authed.Group("/audit"), auditRepo)
	users.Register(authed.Group("/users"), userListRepo)
	dashboard.Register(authed.Group("/dashboard"), dashboardRepo)

	insightsHandler := insightshttp.NewHandler(insightsSvc)
	insightsHandler.Register(authed.Group("/insights"), authed.Group("/risk"))

	return r
}
