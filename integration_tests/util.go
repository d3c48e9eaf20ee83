package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/getAlby/votehub.go/db"
	"github.com/getAlby/votehub.go/db/migrations"
	"github.com/getAlby/votehub.go/lib"
	"github.com/getAlby/votehub.go/lib/responses"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/getAlby/votehub.go/lib/tokens"
	"github.com/getAlby/votehub.go/lib/transport"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	testAdminToken = "admin-secret"
	testOwner      = "registry-owner"
)

func testConfig() *service.Config {
	return &service.Config{
		DatabaseUri:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		RegistryOwner:        testOwner,
		JWTSecret:            []byte("SECRET"),
		JWTAccessTokenExpiry: 3600,
		AdminToken:           testAdminToken,
		DefaultRateLimit:     1000,
		StrictRateLimit:      1000,
		BurstRateLimit:       1000,
	}
}

func RegistryTestServiceInit(c *service.Config) (svc *service.RegistryService, err error) {
	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	_, err = migrations.Migrate(ctx, dbConn)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.RegistryService{
		Config:             c,
		DB:                 dbConn,
		Logger:             logger,
		NotificationPubSub: service.NewPubsub(),
	}
	if err = svc.InitRegistry(ctx); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return svc, nil
}

// newTestEcho wires the service the same way the server binary does.
func newTestEcho(svc *service.RegistryService) *echo.Echo {
	c := svc.Config
	e := transport.InitEcho(c, svc.Logger)
	logMw := transport.CreateLoggingMiddleware(svc.Logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)
	transport.RegisterV2Endpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw)
	return e
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) request(method, target, token string, body interface{}) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	var reader io.Reader = &buf
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decode(rec *httptest.ResponseRecorder, expectedStatus int, v interface{}) {
	assert.Equal(suite.T(), expectedStatus, rec.Code, rec.Body.String())
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(v))
}

func (suite *TestSuite) checkErrResponse(rec *httptest.ResponseRecorder, expected responses.ErrorResponse) {
	errorResponse := &responses.ErrorResponse{}
	suite.decode(rec, expected.HttpStatusCode, errorResponse)
	assert.Equal(suite.T(), expected.Message, errorResponse.Message)
}

func (suite *TestSuite) authenticate(account string) string {
	body := struct {
		AccessToken string `json:"access_token"`
	}{}
	rec := suite.request(http.MethodPost, "/v2/auth", testAdminToken, map[string]string{"account": account})
	suite.decode(rec, http.StatusOK, &body)
	return body.AccessToken
}
