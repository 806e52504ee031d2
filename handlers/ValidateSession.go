package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"backend/models"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from the Authorization header, tolerating
// a missing Bearer prefix for older clients.
func bearerToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader("Authorization"))
	token = strings.TrimPrefix(token, "Bearer ")
	return strings.TrimSpace(token)
}

// AuthRequired validates the bearer token against both the JWT signature and
// the session table. A 401 here is the client's cue to redirect to login.
func AuthRequired(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			c.Abort()
			return
		}

		parsedToken, err := utils.ValidateJWT(token)
		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := storage.GetUserBySessionToken(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("sessionToken", token)
		c.Next()
	}
}

// RequireRole limits a route group to the given roles. AuthRequired must run
// first. The server-side role column is authoritative; client-decoded claims
// are advisory only.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !allowed[user.RoleName] {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied for this role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// ValidateSession checks a session token explicitly
// @Summary Validate session
// @Description Validate user session token against the session table
// @Tags Authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [post]
func ValidateSession(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing Authorization header"})
			return
		}

		parsedToken, err := utils.ValidateJWT(token)
		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		user, err := storage.GetUserBySessionToken(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Session validated",
			"role_name": user.RoleName,
			"user_id":   user.ID,
			"agent_id":  user.AgentID,
		})
	}
}
