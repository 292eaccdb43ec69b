// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/account"
	"github.com/pocketledger/backend/internal/application/usecase/auth"
	"github.com/pocketledger/backend/internal/application/usecase/budget"
	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/application/usecase/report"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/infra/scheduler"
	"github.com/pocketledger/backend/internal/infra/server/router"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/cache"
	"github.com/pocketledger/backend/internal/integration/email"
	"github.com/pocketledger/backend/internal/integration/email/templates"
	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

// Housekeeping schedules.
const (
	RateLimiterCleanupSchedule = "@every 5m"
	TokenCleanupSchedule       = "@every 1h"
)

// Externals are clients created outside the injector. Nil fields fall back to what the
// configuration describes.
type Externals struct {
	Redis   *redis.Client
	Advisor adapter.FinancialAdvisor
	Sender  adapter.EmailSender
	Clock   adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Scheduler    *scheduler.Scheduler
	RateLimiter  *middleware.RateLimiter
	DigestWorker *email.DigestWorker

	ensureDemoUser *auth.EnsureDemoUserUseCase
	tokenRepo      adapter.RefreshTokenRepository
	clock          adapter.Clock
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, ext Externals) (*Injector, error) {
	loc := cfg.Server.Location()
	clock := ext.Clock
	if clock == nil {
		clock = adapter.SystemClock{Location: loc}
	}

	// Create repositories
	store := persistence.NewStore(db)
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewRefreshTokenRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:            cfg.JWT.AccessTokenExpiry,
		Refresh:           cfg.JWT.RefreshTokenExpiry,
		RememberMeAccess:  cfg.JWT.RememberAccessExpiry,
		RememberMeRefresh: cfg.JWT.RememberRefreshExpiry,
	}, tokenRepo)

	advisor := ext.Advisor
	if advisor == nil {
		advisor = adapters.NewGeminiAdvisor(cfg.Gemini.APIKey, cfg.Gemini.Model).WithTimeout(cfg.Gemini.Timeout)
	}

	var adviceCache adapter.AdviceCache = cache.NoopAdviceCache{}
	if ext.Redis != nil {
		adviceCache = cache.NewRedisAdviceCache(ext.Redis, cfg.Redis.AdviceTTL)
	}

	sender := ext.Sender
	if sender == nil {
		var err error
		if sender, err = newEmailSender(cfg.Email); err != nil {
			return nil, err
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, store.Accounts(), passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	currentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(store.Accounts())
	saveAccountUseCase := account.NewSaveAccountUseCase(store.Accounts(), clock)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(store.Accounts())

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(store)
	saveTransactionUseCase := transaction.NewSaveTransactionUseCase(store, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(store.Transactions())

	// Create category and budget use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(store.Categories())
	listBudgetsUseCase := budget.NewListBudgetsUseCase(store.Budgets())
	setBudgetUseCase := budget.NewSetBudgetUseCase(store.Budgets(), store.Categories(), clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(store.Budgets(), clock)

	// Create dashboard and report use cases
	loader := dashboard.NewSnapshotLoader(store)
	summaryUseCase := dashboard.NewGetSummaryUseCase(loader, clock)
	boardUseCase := dashboard.NewGetBudgetBoardUseCase(loader, clock)
	trendsUseCase := dashboard.NewGetTrendsUseCase(loader, clock)
	adviceUseCase := report.NewGetAdviceUseCase(loader, advisor, adviceCache, cfg.Gemini.Language)
	exportUseCase := report.NewExportTransactionsUseCase(loader, adapters.NewXLSXExporter(), clock)
	digestUseCase := report.NewSendDigestUseCase(loader, userRepo, renderer, sender, clock)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cfg.Storage.Backend)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		currentUserUseCase,
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		saveAccountUseCase,
		deleteAccountUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		saveTransactionUseCase,
		deleteTransactionUseCase,
		loc,
	)

	categoryController := controller.NewCategoryController(listCategoriesUseCase)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		setBudgetUseCase,
		deleteBudgetUseCase,
		listCategoriesUseCase,
	)

	dashboardController := controller.NewDashboardController(
		summaryUseCase,
		boardUseCase,
		trendsUseCase,
	)

	reportController := controller.NewReportController(
		adviceUseCase,
		exportUseCase,
		digestUseCase,
	)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(cfg.Server.LoginMaxAttempts, cfg.Server.LoginWindow)
	loginRateLimiter.SetEnabled(cfg.Server.RateLimitEnabled)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		transactionController,
		categoryController,
		budgetController,
		dashboardController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		Scheduler:      scheduler.New(loc),
		RateLimiter:    loginRateLimiter,
		DigestWorker:   email.NewDigestWorker(digestUseCase, email.DefaultDigestTimeout),
		ensureDemoUser: auth.NewEnsureDemoUserUseCase(userRepo, store.Accounts(), passwordService),
		tokenRepo:      tokenRepo,
		clock:          clock,
	}, nil
}

// SeedDemoUser creates the configured demo user when it does not exist yet.
func (i *Injector) SeedDemoUser(ctx context.Context) error {
	if !i.Config.Demo.Enabled {
		return nil
	}

	user, created, err := i.ensureDemoUser.Execute(ctx, auth.EnsureDemoUserInput{
		Email:    i.Config.Demo.Email,
		Name:     i.Config.Demo.Name,
		Password: i.Config.Demo.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	if created {
		slog.Info("Demo user created", "user_id", user.ID, "email", user.Email)
	}
	return nil
}

// ScheduleJobs registers the background jobs. The digest only runs when enabled.
func (i *Injector) ScheduleJobs() error {
	if err := i.Scheduler.Add("rate_limiter_cleanup", RateLimiterCleanupSchedule, func(context.Context) {
		if removed := i.RateLimiter.Cleanup(); removed > 0 {
			slog.Debug("Rate limiter entries expired", "removed", removed)
		}
	}); err != nil {
		return err
	}

	if err := i.Scheduler.Add("refresh_token_cleanup", TokenCleanupSchedule, func(ctx context.Context) {
		purged, err := i.tokenRepo.DeleteExpired(ctx, i.clock.Now().Add(-time.Hour))
		if err != nil {
			slog.Error("Failed to purge refresh tokens", "error", err)
			return
		}
		slog.Debug("Refresh tokens purged", "count", purged)
	}); err != nil {
		return err
	}

	if !i.Config.Digest.Enabled {
		slog.Info("Monthly digest disabled")
		return nil
	}
	return i.Scheduler.Add("monthly_digest", i.Config.Digest.Schedule, func(ctx context.Context) {
		i.DigestWorker.Run(ctx)
	})
}

func newEmailSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, email delivery disabled")
	}
	if cfg.ResendAPIKey == "" || cfg.BaseURL == "" {
		return email.NewSender(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail), nil
	}
	return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail).WithBaseURL(cfg.BaseURL)
}
