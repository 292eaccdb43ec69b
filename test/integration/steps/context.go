//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/infra/dependency"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
	"github.com/pocketledger/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	resendEmailPath = "/emails"
)

// suiteResources are shared by every scenario. The API runs once per test binary.
type suiteResources struct {
	uri      string
	db       *mock.Db
	resend   *mock.ApiMock
	clock    *mock.Time
	advisor  *stubAdvisor
	injector *dependency.Injector
	server   *http.Server
}

var (
	suiteInit sync.Once
	suite     *suiteResources
)

// stubAdvisor replaces the Gemini advisor with a scripted reply.
type stubAdvisor struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (s *stubAdvisor) Advise(ctx context.Context, req adapter.AdviceRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubAdvisor) IsAvailable() bool { return true }

func (s *stubAdvisor) script(reply string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply, s.err, s.calls = reply, err, 0
}

func (s *stubAdvisor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// testContext holds the state of one scenario.
type testContext struct {
	*suiteResources

	client          *http.Client
	headers         map[string]string
	response        *response
	accessToken     string
	refreshToken    string
	currentUserID   uuid.UUID
	currentEmail    string
	accountIDs      map[string]uuid.UUID
	lastAccountID   uuid.UUID
	lastResourceID  uuid.UUID
	lastTransaction uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite starts the shared API server before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		startSuite()
	})

	ctx.AfterSuite(func() {
		if suite == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = suite.server.Shutdown(shutdownCtx)
		suite.resend.Close()
	})
}

func startSuite() {
	suiteInit.Do(func() {
		port := findAvailablePort()
		_ = os.Setenv("ENV", "test")

		resend := mock.NewApiServer()
		resend.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Server.TimeZone = "UTC"
		cfg.Server.RateLimitEnabled = true
		cfg.Server.LoginMaxAttempts = 5
		cfg.Server.LoginWindow = time.Minute
		cfg.Storage.Backend = config.BackendSQLite
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.BcryptCost = bcrypt.MinCost
		cfg.Email.ResendAPIKey = "re_test"
		cfg.Email.BaseURL = resend.GetUrl()
		cfg.Demo.Enabled = false

		db := mock.NewDb("pocket_ledger", model.All())
		clock := mock.NewTime()
		advisor := &stubAdvisor{}

		injector, err := dependency.NewInjector(cfg, db.DbConn, dependency.Externals{
			Redis:   mock.NewRedis(),
			Advisor: advisor,
			Clock:   clock,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}

		server := &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", port),
			Handler: injector.Router.Setup("test"),
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				panic(err)
			}
		}()

		suite = &suiteResources{
			uri:      fmt.Sprintf("http://127.0.0.1:%d", port),
			db:       db,
			resend:   resend,
			clock:    clock,
			advisor:  advisor,
			injector: injector,
			server:   server,
		}
		waitForServer(suite.uri)
	})
}

func waitForServer(uri string) {
	for i := 0; i < 50; i++ {
		resp, err := http.Get(uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	panic("api server did not become healthy")
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	t := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		startSuite()
		t.suiteResources = suite
		return ctx, t.before()
	})

	// Background steps
	ctx.Step(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Step(`^the current time is "([^"]*)"$`, t.theCurrentTimeIs)

	// User setup steps
	ctx.Step(`^a user exists with email "([^"]*)"$`, t.aUserExistsWithEmail)
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, t.aUserExistsWithEmailAndPassword)
	ctx.Step(`^the user is logged in with valid tokens$`, t.theUserIsLoggedInWithValidTokens)
	ctx.Step(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)

	// Ledger setup steps
	ctx.Step(`^the user has an account "([^"]*)" of type "([^"]*)" with balance "([^"]*)"$`, t.theUserHasAnAccount)
	ctx.Step(`^the user has the following transactions:$`, t.theUserHasTheFollowingTransactions)
	ctx.Step(`^the user has a budget of "([^"]*)" for category "([^"]*)"$`, t.theUserHasABudget)

	// External service steps
	ctx.Step(`^the advisor replies "([^"]*)"$`, t.theAdvisorReplies)
	ctx.Step(`^the advisor is failing$`, t.theAdvisorIsFailing)
	ctx.Step(`^the email provider accepts messages$`, t.theEmailProviderAcceptsMessages)
	ctx.Step(`^the email provider responds with status (\d+)$`, t.theEmailProviderRespondsWithStatus)
	ctx.Step(`^the advice cache has expired$`, t.theAdviceCacheHasExpired)

	// Header steps
	ctx.Step(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	// Request and job steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.Step(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, t.iSendRequestsToWithBody)
	ctx.Step(`^the monthly digest job runs$`, t.theMonthlyDigestJobRuns)
	ctx.Step(`^the demo user is seeded$`, t.theDemoUserIsSeeded)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be null$`, t.theResponseFieldShouldBeNull)
	ctx.Step(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, t.theResponseHeaderShouldContain)

	// External service assertion steps
	ctx.Step(`^the advisor should have been called (\d+) times?$`, t.theAdvisorShouldHaveBeenCalled)
	ctx.Step(`^the email provider should have received (\d+) emails?$`, t.theEmailProviderShouldHaveReceived)
	ctx.Step(`^the email (\d+) should be sent to "([^"]*)"$`, t.theEmailShouldBeSentTo)
	ctx.Step(`^the email (\d+) subject should contain "([^"]*)"$`, t.theEmailSubjectShouldContain)
	ctx.Step(`^the email (\d+) should be authorized with the API key "([^"]*)"$`, t.theEmailShouldBeAuthorizedWith)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentEmail = ""
	t.accountIDs = make(map[string]uuid.UUID)
	t.lastAccountID = uuid.Nil
	t.lastResourceID = uuid.Nil
	t.lastTransaction = uuid.Nil

	t.clock.Reset()
	t.advisor.script("Keep it up.", nil)
	t.resend.ClearResponses("", "")
	t.injector.RateLimiter.Reset()
	t.injector.Config.Demo.Enabled = false

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}
