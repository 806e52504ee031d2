package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ForgetPasswordHandler requests a reset link by email
// @Summary      Forgot password
// @Description  Email a password reset link valid for 15 minutes
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "{\"email\":\"user@example.com\"}"
// @Success      200   {object}  models.SuccessResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/forgot-password [post]
func ForgetPasswordHandler(db *sql.DB, emailService *services.EmailService, frontendBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		type Request struct {
			Email string `json:"email" binding:"required,email"`
		}
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
			return
		}

		var userID int
		err := db.QueryRow(`SELECT id FROM users WHERE LOWER(email) = LOWER($1)`, req.Email).Scan(&userID)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Email not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}

		token := uuid.New().String()
		expiry := time.Now().Add(15 * time.Minute)

		_, err = db.Exec(`UPDATE users SET reset_token=$1, reset_token_expiry=$2 WHERE id=$3`, token, expiry, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save token"})
			return
		}

		resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendBaseURL, token)
		if err := emailService.SendPasswordResetEmail(req.Email, resetLink); err != nil {
			log.Printf("Failed to send reset email: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send reset email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to email"})
	}
}

// ResetPasswordHandler sets a new password using the reset token
// @Summary      Reset password
// @Description  The reset token from the emailed link travels as the bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer reset token"
// @Param        body    body      object  true  "{\"new_password\":\"...\"}"
// @Success      200     {object}  models.SuccessResponse
// @Failure      400     {object}  models.ErrorResponse
// @Router       /api/reset-password [post]
func ResetPasswordHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Reset token is required"})
			return
		}

		type Request struct {
			NewPassword string `json:"new_password" binding:"required,min=6"`
		}
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid password format"})
			return
		}

		var userID int
		var expiry time.Time
		err := db.QueryRow(`SELECT id, reset_token_expiry FROM users WHERE reset_token=$1`, token).
			Scan(&userID, &expiry)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}

		if time.Now().After(expiry) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Token has expired"})
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}

		_, err = db.Exec(`UPDATE users SET password=$1, reset_token=NULL, reset_token_expiry=NULL, updated_at=NOW() WHERE id=$2`, hashed, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
	}
}

// ChangePasswordHandler changes the authenticated user's password
// @Summary      Change password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "old_password, new_password"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/change-password [post]
func ChangePasswordHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type Request struct {
			OldPassword string `json:"old_password" binding:"required"`
			NewPassword string `json:"new_password" binding:"required,min=6"`
		}
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
			return
		}

		user := currentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		var currentHash string
		err := db.QueryRow(`SELECT password FROM users WHERE id = $1`, user.ID).Scan(&currentHash)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}

		if !utils.ValidatePassword(currentHash, req.OldPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Old password is incorrect"})
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}

		_, err = db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashed, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password"})
			return
		}

		logActivity(c, "Change Password", "Update", "User changed password", "")
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
