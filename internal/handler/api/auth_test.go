//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"tablebook/internal/domain/user"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/httptest"
	"tablebook/tests/common/testutil"
	commandsmock "tablebook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/guest", s.handler.Guest)
	s.router.POST("/auth/refresh", s.handler.Refresh)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func loginResult(role user.Role) *commands.LoginResult {
	return &commands.LoginResult{
		UserID: uuid.New(),
		Role:   role,
		TokenPair: &commands.TokenPair{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
		},
	}
}

func (s *AuthHandlerTestSuite) TestLoginEndpoint() {
	url := "/auth/login"
	reqBody := map[string]any{"email": "admin@example.com", "password": "password123"}

	s.Run("success: returns 200 OK with a token pair", func() {
		result := loginResult(user.RoleAdmin)
		s.mockCommands.EXPECT().Login(gomock.Any(), "admin@example.com", "password123").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.TokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(result.UserID, body.UserID)
		s.Equal(user.RoleAdmin.String(), body.Role)
		s.Equal("test-access-token", body.AccessToken)
		s.Equal("test-refresh-token", body.RefreshToken)
	})

	s.Run("error: 401 Unauthorized for bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestGuestEndpoint() {
	url := "/auth/guest"
	reqBody := map[string]any{"name": "Alice Carter", "phone": "+15551234567"}

	s.Run("success: returns 200 OK with a customer token pair", func() {
		result := loginResult(user.RoleCustomer)
		s.mockCommands.EXPECT().GuestToken(gomock.Any(), "Alice Carter", "+15551234567").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.TokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(user.RoleCustomer.String(), body.Role)
	})

	s.Run("error: 400 Bad Request for an invalid guest identity", func() {
		s.mockCommands.EXPECT().GuestToken(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidGuest).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		cases := []testCaseAuth{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: phone (required)", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRefreshEndpoint() {
	url := "/auth/refresh"
	reqBody := map[string]any{"refreshToken": "test-refresh-token"}

	s.Run("success: returns 200 OK with a fresh pair", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "test-refresh-token").
			Return(&commands.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.TokenPairResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("new-access-token", body.AccessToken)
		s.Equal("new-refresh-token", body.RefreshToken)
	})

	s.Run("error: 401 Unauthorized for an invalid refresh token", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrTokenValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 Bad Request when the token is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("refreshToken", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
