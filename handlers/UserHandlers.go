package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// AddMainUser creates a main user or coordinator account
// @Summary Add main user
// @Description Admin-only. Freight agent accounts are created through add-freight-agent instead.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AddUserRequest true "User details"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/add-main-user [post]
func AddMainUser(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		switch req.RoleName {
		case utils.RoleAdmin, utils.RoleMainUser, utils.RoleCoordinator:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be admin, mainUser or coordinator"})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}

		var user models.User
		err = db.QueryRow(`
			INSERT INTO users (email, password, first_name, last_name, role_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, email, first_name, last_name, role_name, suspended, created_at, updated_at`,
			req.Email, hashed, req.FirstName, req.LastName, req.RoleName,
		).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.RoleName,
			&user.Suspended, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"message": "A user with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user", "details": err.Error()})
			return
		}

		if err := emailService.SendWelcomeUserEmail(user, req.Password); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}

		logActivity(c, "User", "Post", "User "+user.Email+" created with role "+user.RoleName, "")
		c.JSON(http.StatusOK, user)
	}
}

// GetUsers lists accounts
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /api/users [get]
func GetUsers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT id, email, first_name, last_name, role_name, agent_id, suspended, created_at, updated_at
			FROM users ORDER BY email ASC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load users", "details": err.Error()})
			return
		}
		defer rows.Close()

		users := []models.User{}
		for rows.Next() {
			var u models.User
			var agentID sql.NullInt64
			if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleName,
				&agentID, &u.Suspended, &u.CreatedAt, &u.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read user row", "details": err.Error()})
				return
			}
			if agentID.Valid {
				u.AgentID = int(agentID.Int64)
			}
			users = append(users, u)
		}

		c.JSON(http.StatusOK, users)
	}
}

// SuspendUser toggles account suspension
// @Summary Suspend or unsuspend user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body object true "{\"email\":\"...\",\"suspended\":true}"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/suspend-user [post]
func SuspendUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email     string `json:"email" binding:"required,email"`
			Suspended *bool  `json:"suspended" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		result, err := db.Exec(`UPDATE users SET suspended = $1, updated_at = NOW() WHERE LOWER(email) = LOWER($2)`,
			*req.Suspended, req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user", "details": err.Error()})
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		// Suspension takes effect immediately: drop any live sessions.
		if *req.Suspended {
			_, _ = db.Exec(`DELETE FROM session WHERE user_id = (SELECT id FROM users WHERE LOWER(email) = LOWER($1))`, req.Email)
		}

		logActivity(c, "User", "Update", "Suspension changed for "+req.Email, "")
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}
