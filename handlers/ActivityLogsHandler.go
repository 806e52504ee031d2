package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// SaveActivityLog persists one audit entry. Failures are logged, never
// surfaced: audit must not break the action it records.
func SaveActivityLog(entry models.ActivityLog) {
	gdb := storage.GetGormDB()
	if gdb == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := gdb.Create(&entry).Error; err != nil {
		log.Printf("failed to save activity log (%s/%s): %v", entry.EventContext, entry.EventName, err)
	}
}

// logActivity is the handler-side shorthand for the common case.
func logActivity(c *gin.Context, context, event, description, orderNumber string) {
	userName := ""
	if user := currentUser(c); user != nil {
		userName = user.FirstName + " " + user.LastName
	}
	SaveActivityLog(models.ActivityLog{
		EventContext: context,
		EventName:    event,
		Description:  description,
		OrderNumber:  orderNumber,
		UserName:     userName,
		IPAddress:    c.ClientIP(),
		HostName:     c.Request.Host,
	})
}

// GetActivityLogs lists recent audit entries
// @Summary List activity logs
// @Tags logs
// @Produce json
// @Param limit query int false "Max rows (default 100)"
// @Param orderNumber query string false "Filter by order number"
// @Success 200 {array} models.ActivityLog
// @Failure 500 {object} models.ErrorResponse
// @Router /api/activity-logs [get]
func GetActivityLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		gdb := storage.GetGormDB()
		if gdb == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Audit store unavailable"})
			return
		}

		limit := 100
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}

		query := gdb.Order("created_at DESC").Limit(limit)
		if orderNumber := c.Query("orderNumber"); orderNumber != "" {
			query = query.Where("order_number = ?", orderNumber)
		}

		var logs []models.ActivityLog
		if err := query.Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load activity logs", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, logs)
	}
}
