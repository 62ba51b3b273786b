package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	authMocks "github.com/allisson/vending/internal/auth/usecase/mocks"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// newProtectedRouter builds a router whose /protected route echoes the principal.
func newProtectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		principal, _ := GetPrincipal(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID.String(), "role": principal.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticationMiddleware(t *testing.T) {
	principal := &authDomain.Principal{
		UserID:   uuid.Must(uuid.NewV7()),
		Username: "buyer1",
		Role:     userDomain.RoleBuyer,
	}

	t.Run("Success_BearerIsCaseInsensitive", func(t *testing.T) {
		tokenUseCase := &authMocks.MockTokenUseCase{}
		tokenUseCase.On("Authenticate", mock.Anything, "jwt-token").Return(principal, nil).Once()
		router := newProtectedRouter(AuthenticationMiddleware(tokenUseCase, newTestLogger()))

		w := doRequest(router, "bearer jwt-token")

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, principal.UserID.String(), body["user_id"])
		tokenUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		tokenUseCase := &authMocks.MockTokenUseCase{}
		router := newProtectedRouter(AuthenticationMiddleware(tokenUseCase, newTestLogger()))

		assert.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
		tokenUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		tokenUseCase := &authMocks.MockTokenUseCase{}
		router := newProtectedRouter(AuthenticationMiddleware(tokenUseCase, newTestLogger()))

		assert.Equal(t, http.StatusUnauthorized, doRequest(router, "Basic abc").Code)
		assert.Equal(t, http.StatusUnauthorized, doRequest(router, "Bearer   ").Code)
	})

	t.Run("Error_RevokedSession", func(t *testing.T) {
		tokenUseCase := &authMocks.MockTokenUseCase{}
		tokenUseCase.On("Authenticate", mock.Anything, "jwt-token").
			Return(nil, authDomain.ErrRevokedSession).
			Once()
		router := newProtectedRouter(AuthenticationMiddleware(tokenUseCase, newTestLogger()))

		w := doRequest(router, "Bearer jwt-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "auth/revoked-session", decodeErrorResponse(t, w).Code)
	})

	t.Run("Error_Infrastructure", func(t *testing.T) {
		tokenUseCase := &authMocks.MockTokenUseCase{}
		tokenUseCase.On("Authenticate", mock.Anything, "jwt-token").
			Return(nil, errors.New("db down")).
			Once()
		router := newProtectedRouter(AuthenticationMiddleware(tokenUseCase, newTestLogger()))

		assert.Equal(t, http.StatusInternalServerError, doRequest(router, "Bearer jwt-token").Code)
	})
}

func TestRequireRole(t *testing.T) {
	seller := &authDomain.Principal{UserID: uuid.Must(uuid.NewV7()), Role: userDomain.RoleSeller}

	withPrincipal := func(principal *authDomain.Principal) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
			c.Next()
		}
	}

	t.Run("Success_MatchingRole", func(t *testing.T) {
		router := newProtectedRouter(withPrincipal(seller), RequireRole(userDomain.RoleSeller, newTestLogger()))
		assert.Equal(t, http.StatusOK, doRequest(router, "").Code)
	})

	t.Run("Error_WrongRole", func(t *testing.T) {
		router := newProtectedRouter(withPrincipal(seller), RequireRole(userDomain.RoleBuyer, newTestLogger()))

		w := doRequest(router, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "auth/insufficient-role", decodeErrorResponse(t, w).Code)
	})

	t.Run("Error_NoPrincipal", func(t *testing.T) {
		router := newProtectedRouter(RequireRole(userDomain.RoleBuyer, newTestLogger()))
		assert.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
	})
}
