package httpHandler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actingUserKey = "actingUser"

// AuthMiddleware resolves the acting user from the bearer token and
// aborts unauthenticated requests.
type AuthMiddleware struct {
	sessions *SessionManager
	accounts *usecases.AccountUseCase
	matrix   *usecases.PermissionMatrix
	log      *zap.Logger
}

func NewAuthMiddleware(sessions *SessionManager, accounts *usecases.AccountUseCase, matrix *usecases.PermissionMatrix, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, accounts: accounts, matrix: matrix, log: log}
}

func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		userID, err := m.sessions.Lookup(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		user, err := m.accounts.GetUser(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		c.Set(actingUserKey, user)
		c.Next()
	}
}

// Permission gates a route on one (module, action) grant. It runs after
// Required, so the acting user is always present.
func (m *AuthMiddleware) Permission(moduleCode, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := ActingUser(c)
		if err := m.matrix.RequireAuthorization(user, moduleCode, action); err != nil {
			if errors.Is(err, usecases.ErrPermissionDenied) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
				return
			}
			m.log.Error("authorization check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		c.Next()
	}
}

// SuperuserOnly guards maintenance endpoints like hard deletion.
func (m *AuthMiddleware) SuperuserOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := ActingUser(c)
		if user == nil || !user.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next()
	}
}

// ActingUser returns the authenticated user stored by Required.
func ActingUser(c *gin.Context) *entities.User {
	value, ok := c.Get(actingUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

// intQuery parses an integer query parameter; absent or malformed values
// read as zero.
func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

// respondError maps the usecase error taxonomy onto HTTP statuses. Cross-
// tenant targets surface as 404, exactly like rows that do not exist.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, usecases.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, usecases.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
