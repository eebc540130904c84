package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fincontrol/internal/handlers"
	"fincontrol/internal/logger"
	"fincontrol/internal/middleware"
	"fincontrol/internal/models"
	"fincontrol/internal/services"
	"fincontrol/internal/validator"
)

const (
	testUser     = "operator"
	testPassword = "correct-horse"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:flowdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Account{},
		&models.SubAccount{},
		&models.MonthlyAllocation{},
		&models.IncomeEntry{},
		&models.Expense{},
		&models.Transfer{},
		&models.Loan{},
		&models.Installment{},
		&models.Session{},
		&models.SweepState{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	// Services
	sessionService := services.NewSessionService(db, testUser, string(hash), time.Hour)
	accountService := services.NewAccountService(db)
	ledgerService := services.NewLedgerService(db)
	loanService := services.NewLoanService(db)
	incomeService := services.NewIncomeService(db, loanService)
	sweepService := services.NewSweepService(db, accountService, ledgerService)
	reportService := services.NewReportService(db, incomeService, ledgerService, loanService)

	if _, err := accountService.EnsureReserves(); err != nil {
		t.Fatalf("failed to bootstrap reserves: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(sessionService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	accountHandler := handlers.NewAccountHandler(accountService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	loanHandler := handlers.NewLoanHandler(loanService)
	reportHandler := handlers.NewReportHandler(reportService, sweepService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth(sessionService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/session", authHandler.CheckSession)

	protected.POST("/income", incomeHandler.RecordIncome)
	protected.GET("/income/:year/:month", incomeHandler.ListIncome)

	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.POST("/sub-accounts", accountHandler.CreateSubAccount)
	protected.GET("/sub-accounts", accountHandler.ListSubAccounts)
	protected.DELETE("/sub-accounts/:id", accountHandler.DeleteSubAccount)

	protected.POST("/allocations", ledgerHandler.AssignAllocation)
	protected.POST("/expenses", ledgerHandler.RecordExpense)
	protected.GET("/expenses/:year/:month", ledgerHandler.ListExpenses)
	protected.POST("/transfers", ledgerHandler.RecordTransfer)
	protected.GET("/transfers/:year/:month", ledgerHandler.ListTransfers)
	protected.GET("/balances/:year/:month", ledgerHandler.MonthlyBalances)

	protected.POST("/loans", loanHandler.RegisterLoan)
	protected.GET("/loans", loanHandler.ListLoans)
	protected.GET("/loans/:id", loanHandler.GetLoan)
	protected.GET("/loans/:id/installments", loanHandler.ListInstallments)
	protected.DELETE("/loans/:id", loanHandler.DeleteLoan)
	protected.POST("/installments/:id/settle", loanHandler.SettleInstallment)

	protected.GET("/dashboard/:year/:month", reportHandler.Dashboard)
	protected.GET("/reports/:year/:month/pdf", reportHandler.MonthlyReportPDF)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.SessionTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login authenticates the operator and returns the session token.
func (app *testApp) login(t *testing.T) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, testUser, testPassword)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}
