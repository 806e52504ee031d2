package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"backend/models"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// SelectAgent confirms one quote for an order
// @Summary Select agent
// @Description One-way transition: sets the selected quote and completes the order. A repeat request is a no-op answered with 409; the database row is the arbiter of concurrent attempts.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param request body object true "{\"orderNumber\":\"...\",\"OrderQuoteID\":\"...\"}"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/update/select-agent [post]
func SelectAgent(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderNumber  string `json:"orderNumber" binding:"required"`
			OrderQuoteID string `json:"OrderQuoteID" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		// The quote must belong to the order and still be live.
		var expired bool
		err := db.QueryRow(`SELECT expired FROM freight_quotes WHERE order_quote_id = $1 AND order_number = $2`,
			req.OrderQuoteID, req.OrderNumber).Scan(&expired)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Quote not found for this order"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check quote", "details": err.Error()})
			return
		}
		if expired {
			c.JSON(http.StatusConflict, gin.H{"message": "Quote validity has expired"})
			return
		}

		// Conditional update: only an in-progress order with no prior
		// selection moves. A second click lands here after the first won and
		// becomes a no-op.
		result, err := db.Exec(`
			UPDATE orders
			SET selected_quote_id = $1, status = $2, updated_at = NOW()
			WHERE order_number = $3 AND status = $4 AND selected_quote_id IS NULL`,
			req.OrderQuoteID, models.StatusCompleted, req.OrderNumber, models.StatusInProgress)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to select agent", "details": err.Error()})
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			var exists int
			if err := db.QueryRow(`SELECT 1 FROM orders WHERE order_number = $1`, req.OrderNumber).Scan(&exists); err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusConflict, gin.H{"message": "Order already has a selected agent or is not awaiting selection"})
			return
		}

		logActivity(c, "Order", "Update", "Agent selected, quote "+req.OrderQuoteID, req.OrderNumber)
		c.JSON(http.StatusOK, gin.H{"message": "Agent selected"})
	}
}

// MarkPending parks an order without selecting an agent
// @Summary Mark order pending
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param request body object true "{\"orderNumber\":\"...\"}"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/update/mark-pending [post]
func MarkPending(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderNumber string `json:"orderNumber" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		transitionOrder(c, db, req.OrderNumber, models.StatusPending, "", "Order marked pending")
	}
}

// CancelOrder cancels an order with a reason
// @Summary Cancel order
// @Description Requires a reason of 5 to 200 characters. Every agent that quoted the order is notified by email.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param request body object true "{\"orderNumber\":\"...\",\"reason\":\"...\"}"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/update/cancel-order [post]
func CancelOrder(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderNumber string `json:"orderNumber" binding:"required"`
			Reason      string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		if !repository.ValidCancelReason(req.Reason) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Cancellation reason must be between 5 and 200 characters",
			})
			return
		}

		if !transitionOrder(c, db, req.OrderNumber, models.StatusCancelled, req.Reason, "Order cancelled: "+req.Reason) {
			return
		}

		// Notify every agent that quoted the order. The cancellation stands
		// even if mail delivery fails; failures go to the server log.
		go notifyQuotingAgents(db, emailService, req.OrderNumber, req.Reason)
	}
}

// transitionOrder applies a guarded status change and writes the response.
// Returns true when the order moved.
func transitionOrder(c *gin.Context, db *sql.DB, orderNumber, target, cancelReason, logDescription string) bool {
	var status string
	err := db.QueryRow(`SELECT status FROM orders WHERE order_number = $1`, orderNumber).Scan(&status)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check order", "details": err.Error()})
		return false
	}

	if !repository.CanTransition(status, target) {
		c.JSON(http.StatusConflict, gin.H{"message": "Order is " + status + " and cannot become " + target})
		return false
	}

	// Re-check the source status inside the UPDATE so a concurrent
	// transition cannot double-apply.
	result, err := db.Exec(`
		UPDATE orders SET status = $1, cancel_reason = $2, updated_at = NOW()
		WHERE order_number = $3 AND status = $4`,
		target, cancelReason, orderNumber, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order", "details": err.Error()})
		return false
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Order status changed concurrently, please reload"})
		return false
	}

	logActivity(c, "Order", "Update", logDescription, orderNumber)
	c.JSON(http.StatusOK, gin.H{"message": "Order is now " + target})
	return true
}

func notifyQuotingAgents(db *sql.DB, emailService *services.EmailService, orderNumber, reason string) {
	rows, err := db.Query(`
		SELECT DISTINCT a.email
		FROM freight_quotes q
		JOIN agents a ON a.id = q.agent_id
		WHERE q.order_number = $1`, orderNumber)
	if err != nil {
		log.Printf("failed to list agents for cancelled order %s: %v", orderNumber, err)
		return
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			continue
		}
		emails = append(emails, email)
	}

	if len(emails) == 0 {
		return
	}
	if err := emailService.SendCancellationNotice(orderNumber, reason, emails); err != nil {
		log.Printf("failed to send cancellation notices for order %s: %v", orderNumber, err)
	}
}
