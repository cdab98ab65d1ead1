package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenService() *service.JWTTokenService {
	return service.NewJWTTokenService("test-secret-at-least-32-characters!!", time.Hour, "riko-api")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	log := zerolog.Nop()

	router := gin.New()
	router.GET("/test", JWTAuth(newTokenService(), log), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	log := zerolog.Nop()

	router := gin.New()
	router.GET("/test", JWTAuth(newTokenService(), log), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	log := zerolog.Nop()
	other := service.NewJWTTokenService("a-completely-different-secret-key!!!", time.Hour, "riko-api")
	token, _, err := other.Generate(uuid.New(), domain.AccountKindClient)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/test", JWTAuth(newTokenService(), log), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_Success(t *testing.T) {
	log := zerolog.Nop()
	tokenSvc := newTokenService()

	accountID := uuid.New()
	token, _, err := tokenSvc.Generate(accountID, domain.AccountKindClient)
	require.NoError(t, err)

	var capturedID uuid.UUID
	var capturedRole domain.AccountKind
	router := gin.New()
	router.GET("/test", JWTAuth(tokenSvc, log), func(c *gin.Context) {
		id, _ := c.Get(CtxAccountID)
		capturedID = id.(uuid.UUID)
		role, _ := c.Get(CtxRole)
		capturedRole = role.(domain.AccountKind)
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, accountID, capturedID)
	assert.Equal(t, domain.AccountKindClient, capturedRole)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	log := zerolog.Nop()
	tokenSvc := newTokenService()
	token, _, err := tokenSvc.Generate(uuid.New(), domain.AccountKindAdmin)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/test", JWTAuth(tokenSvc, log), RequireRole(domain.AccountKindAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	log := zerolog.Nop()
	tokenSvc := newTokenService()
	token, _, err := tokenSvc.Generate(uuid.New(), domain.AccountKindClient)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/test", JWTAuth(tokenSvc, log), RequireRole(domain.AccountKindAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecovery_PanicRecovered(t *testing.T) {
	log := zerolog.Nop()

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_001", resp["error_code"])
}

func TestMaxBodySize_RejectsOversizedBody(t *testing.T) {
	router := gin.New()
	router.Use(MaxBodySize(16))
	router.POST("/test", func(c *gin.Context) {
		var m map[string]any
		if err := c.ShouldBindJSON(&m); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too large"})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	body := strings.NewReader(`{"data":"` + strings.Repeat("x", 64) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/test", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
