package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fincontrol/internal/config"
	"fincontrol/internal/database"
	"fincontrol/internal/handlers"
	"fincontrol/internal/logger"
	"fincontrol/internal/middleware"
	"fincontrol/internal/services"
	"fincontrol/internal/validator"

	_ "fincontrol/internal/docs" // Import swagger docs
)

// @title           Fincontrol API
// @version         1.0
// @description     Fincontrol is a single-operator household finance API for tracking income, monthly budget allocations, expenses, transfers, and installment loans.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
// @description Opaque session token obtained from /auth/login.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.AppUser == "" || appConfig.AppPassHash == "" {
		return fmt.Errorf("APP_USER and APP_PASS_HASH must be set")
	}

	// Open the database and apply migrations
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	sessionService := services.NewSessionService(db, appConfig.AppUser, appConfig.AppPassHash, appConfig.SessionTTL)
	accountService := services.NewAccountService(db)
	ledgerService := services.NewLedgerService(db)
	loanService := services.NewLoanService(db)
	incomeService := services.NewIncomeService(db, loanService)
	sweepService := services.NewSweepService(db, accountService, ledgerService)
	reportService := services.NewReportService(db, incomeService, ledgerService, loanService)

	// The reserves sub-account must exist before any sweep runs
	if _, err := accountService.EnsureReserves(); err != nil {
		return fmt.Errorf("failed to ensure reserves sub-account: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	accountHandler := handlers.NewAccountHandler(accountService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	loanHandler := handlers.NewLoanHandler(loanService)
	reportHandler := handlers.NewReportHandler(reportService, sweepService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth(sessionService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/session", authHandler.CheckSession)

	// Income routes
	protected.POST("/income", incomeHandler.RecordIncome)
	protected.GET("/income/:year/:month", incomeHandler.ListIncome)

	// Account routes
	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.POST("/sub-accounts", accountHandler.CreateSubAccount)
	protected.GET("/sub-accounts", accountHandler.ListSubAccounts)
	protected.DELETE("/sub-accounts/:id", accountHandler.DeleteSubAccount)

	// Ledger routes
	protected.POST("/allocations", ledgerHandler.AssignAllocation)
	protected.POST("/expenses", ledgerHandler.RecordExpense)
	protected.GET("/expenses/:year/:month", ledgerHandler.ListExpenses)
	protected.POST("/transfers", ledgerHandler.RecordTransfer)
	protected.GET("/transfers/:year/:month", ledgerHandler.ListTransfers)
	protected.GET("/balances/:year/:month", ledgerHandler.MonthlyBalances)

	// Loan routes
	protected.POST("/loans", loanHandler.RegisterLoan)
	protected.GET("/loans", loanHandler.ListLoans)
	protected.GET("/loans/:id", loanHandler.GetLoan)
	protected.GET("/loans/:id/installments", loanHandler.ListInstallments)
	protected.DELETE("/loans/:id", loanHandler.DeleteLoan)
	protected.POST("/installments/:id/settle", loanHandler.SettleInstallment)

	// Report routes
	protected.GET("/dashboard/:year/:month", reportHandler.Dashboard)
	protected.GET("/reports/:year/:month/pdf", reportHandler.MonthlyReportPDF)

	log.Infof("Starting fincontrol server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
