// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarline/storefront-backend/internal/utils"
)

func authTestContext(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c, w
}

func TestOptionalAuthSetsIdentityForValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, "shopper@example.com", "customer", 1)
	require.NoError(t, err)

	c, _ := authTestContext(t, "Bearer "+token)
	OptionalAuth()(c)

	gotID, exists := c.Get("user_id")
	require.True(t, exists)
	assert.Equal(t, userID.String(), gotID)

	role, _ := c.Get("user_role")
	assert.Equal(t, "customer", role)
	assert.False(t, c.IsAborted())
}

func TestOptionalAuthPassesThroughWithoutToken(t *testing.T) {
	c, _ := authTestContext(t, "")
	OptionalAuth()(c)

	_, exists := c.Get("user_id")
	assert.False(t, exists)
	assert.False(t, c.IsAborted())
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")

	c, _ := authTestContext(t, "Bearer not-a-token")
	OptionalAuth()(c)

	_, exists := c.Get("user_id")
	assert.False(t, exists)
	assert.False(t, c.IsAborted())
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	c, w := authTestContext(t, "")
	AuthRequired()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
