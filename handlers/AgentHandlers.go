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

// AddFreightAgent creates an agent company and its login account
// @Summary Add freight agent
// @Description Admin-only. Creates the agent record plus a freightAgent user, then mails the credentials.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AddAgentRequest true "Agent details"
// @Success 200 {object} models.Agent
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/add-freight-agent [post]
func AddFreightAgent(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddAgentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}

		// Agent record and login user land together or not at all.
		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start transaction"})
			return
		}
		defer tx.Rollback()

		var agent models.Agent
		err = tx.QueryRow(`
			INSERT INTO agents (name, contact_person, email, phone_no, service_scope)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, name, contact_person, email, phone_no, service_scope, created_at, updated_at`,
			req.Name, req.ContactPerson, req.Email, req.PhoneNo, req.ServiceScope,
		).Scan(&agent.ID, &agent.Name, &agent.ContactPerson, &agent.Email, &agent.PhoneNo,
			&agent.ServiceScope, &agent.CreatedAt, &agent.UpdatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"message": "An agent with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create agent", "details": err.Error()})
			return
		}

		_, err = tx.Exec(`
			INSERT INTO users (email, password, first_name, role_name, agent_id)
			VALUES ($1, $2, $3, $4, $5)`,
			req.Email, hashed, req.ContactPerson, utils.RoleFreightAgent, agent.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"message": "A user with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create agent user", "details": err.Error()})
			return
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to commit", "details": err.Error()})
			return
		}

		if err := emailService.SendWelcomeAgentEmail(agent, req.Password); err != nil {
			log.Printf("failed to send welcome email to agent %s: %v", agent.Email, err)
		}

		logActivity(c, "Agent", "Post", "Freight agent "+agent.Name+" created", "")
		c.JSON(http.StatusOK, agent)
	}
}

// GetFreightAgents lists agent companies
// @Summary List freight agents
// @Tags admin
// @Produce json
// @Success 200 {array} models.Agent
// @Failure 500 {object} models.ErrorResponse
// @Router /api/freight-agents [get]
func GetFreightAgents(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT id, name, contact_person, email, phone_no, service_scope, created_at, updated_at
			FROM agents ORDER BY name ASC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load agents", "details": err.Error()})
			return
		}
		defer rows.Close()

		agents := []models.Agent{}
		for rows.Next() {
			var a models.Agent
			if err := rows.Scan(&a.ID, &a.Name, &a.ContactPerson, &a.Email, &a.PhoneNo,
				&a.ServiceScope, &a.CreatedAt, &a.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read agent row", "details": err.Error()})
				return
			}
			agents = append(agents, a)
		}

		c.JSON(http.StatusOK, agents)
	}
}
