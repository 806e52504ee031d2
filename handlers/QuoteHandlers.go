package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"backend/models"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	createQuotesTableSQL = `
		CREATE TABLE IF NOT EXISTS freight_quotes (
			order_quote_id      TEXT PRIMARY KEY,
			order_number        TEXT NOT NULL,
			agent               TEXT NOT NULL,
			agent_id            INT NOT NULL,
			created_user        TEXT NOT NULL DEFAULT '',
			net_freight         DOUBLE PRECISION NOT NULL DEFAULT 0,
			awb_fee             DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_freight       DOUBLE PRECISION NOT NULL DEFAULT 0,
			do_fee              DOUBLE PRECISION NOT NULL DEFAULT 0,
			dthc                DOUBLE PRECISION NOT NULL DEFAULT 0,
			free_time           TEXT NOT NULL DEFAULT '',
			transit_time        TEXT NOT NULL DEFAULT '',
			carrier             TEXT NOT NULL DEFAULT '',
			trans_shipment_port TEXT NOT NULL DEFAULT '',
			vessel_or_flight    TEXT NOT NULL DEFAULT '',
			validity_date       TEXT NOT NULL DEFAULT '',
			expired             BOOLEAN NOT NULL DEFAULT FALSE,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_freight_quotes_order ON freight_quotes (order_number);`

	insertQuoteSQL = `
		INSERT INTO freight_quotes (order_quote_id, order_number, agent, agent_id, created_user,
			net_freight, awb_fee, total_freight, do_fee, dthc, free_time, transit_time,
			carrier, trans_shipment_port, vessel_or_flight, validity_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	selectQuotesSQL = `
		SELECT order_quote_id, order_number, agent, agent_id, created_user,
			net_freight, awb_fee, total_freight, do_fee, dthc, free_time, transit_time,
			carrier, trans_shipment_port, vessel_or_flight, validity_date, expired, created_at
		FROM freight_quotes
		WHERE order_number = $1
		ORDER BY created_at ASC`
)

func scanQuote(rows *sql.Rows) (models.FreightQuote, error) {
	var q models.FreightQuote
	err := rows.Scan(&q.OrderQuoteID, &q.OrderNumber, &q.Agent, &q.AgentID, &q.CreatedUser,
		&q.NetFreight, &q.AWBFee, &q.TotalFreight, &q.DOFee, &q.DTHC, &q.FreeTime, &q.TransitTime,
		&q.Carrier, &q.TransShipmentPort, &q.VesselOrFlight, &q.ValidityDate, &q.Expired, &q.CreatedAt)
	return q, err
}

// LoadQuotes fetches every quote for an order. Row-level scan failures are
// logged and skipped rather than failing the listing: the comparison view
// must render with whatever well-formed quotes exist.
func LoadQuotes(db *sql.DB, orderNumber string) ([]models.FreightQuote, error) {
	rows, err := db.Query(selectQuotesSQL, orderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []models.FreightQuote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			log.Printf("skipping malformed quote row for order %s: %v", orderNumber, err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// AddQuote lets a freight agent submit a bid against an order
// @Summary Submit quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body models.AddQuoteRequest true "Quote"
// @Success 200 {object} models.FreightQuote
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/insert/add-quote [post]
func AddQuote(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		user := currentUser(c)
		if user == nil || user.AgentID == 0 {
			c.JSON(http.StatusForbidden, gin.H{"message": "Only freight agents can submit quotes"})
			return
		}

		// Quotes only accumulate while the order awaits selection.
		var status string
		err := db.QueryRow(`SELECT status FROM orders WHERE order_number = $1`, req.OrderNumber).Scan(&status)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check order", "details": err.Error()})
			return
		}
		if status != models.StatusInProgress {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("Order is %s and no longer accepts quotes", status)})
			return
		}

		var agentName string
		err = db.QueryRow(`SELECT name FROM agents WHERE id = $1`, user.AgentID).Scan(&agentName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve agent", "details": err.Error()})
			return
		}

		quote := models.FreightQuote{
			OrderQuoteID:      uuid.New().String(),
			OrderNumber:       req.OrderNumber,
			Agent:             agentName,
			AgentID:           user.AgentID,
			CreatedUser:       user.Email,
			NetFreight:        req.NetFreight,
			AWBFee:            req.AWBFee,
			TotalFreight:      req.TotalFreight,
			DOFee:             req.DOFee,
			DTHC:              req.DTHC,
			FreeTime:          req.FreeTime,
			TransitTime:       req.TransitTime,
			Carrier:           req.Carrier,
			TransShipmentPort: req.TransShipmentPort,
			VesselOrFlight:    req.VesselOrFlight,
			ValidityDate:      req.ValidityDate,
			CreatedAt:         time.Now(),
		}

		_, err = db.Exec(insertQuoteSQL, quote.OrderQuoteID, quote.OrderNumber, quote.Agent, quote.AgentID,
			quote.CreatedUser, quote.NetFreight, quote.AWBFee, quote.TotalFreight, quote.DOFee, quote.DTHC,
			quote.FreeTime, quote.TransitTime, quote.Carrier, quote.TransShipmentPort,
			quote.VesselOrFlight, quote.ValidityDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save quote", "details": err.Error()})
			return
		}

		logActivity(c, "Quote", "Post", "Quote submitted by "+agentName, quote.OrderNumber)
		c.JSON(http.StatusOK, quote)
	}
}

// ViewQuotes lists quotes for an order for the comparison popup
// @Summary List quotes
// @Description Quotes for an order, sorted by a chosen field and direction. The already-selected quote is excluded unless excludeSelected=false; expired quotes are hidden unless includeExpired=true.
// @Tags quotes
// @Produce json
// @Param orderNumber query string true "Order number"
// @Param sortBy query string false "Sort field (totalFreight, netFreight, validityDate, Agent, ...)"
// @Param direction query string false "asc or desc"
// @Param excludeSelected query bool false "Default true"
// @Param includeExpired query bool false "Default false"
// @Success 200 {object} models.QuotesResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/select/view-quotes/ [get]
func ViewQuotes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Query("orderNumber")
		if orderNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "orderNumber is required"})
			return
		}

		quotes, err := LoadQuotes(db, orderNumber)
		if err != nil {
			// Fetch failures resolve to an empty list so the popup still
			// renders; the cause goes to the server log.
			log.Printf("failed to load quotes for order %s: %v", orderNumber, err)
			c.JSON(http.StatusOK, models.QuotesResponse{Quotes: []models.FreightQuote{}})
			return
		}

		if c.Query("includeExpired") != "true" {
			quotes = repository.ActiveQuotes(quotes, time.Now())
		}

		if c.Query("excludeSelected") != "false" {
			var selectedQuoteID sql.NullString
			err := db.QueryRow(`SELECT selected_quote_id FROM orders WHERE order_number = $1`, orderNumber).Scan(&selectedQuoteID)
			if err != nil && err != sql.ErrNoRows {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check selection", "details": err.Error()})
				return
			}
			if selectedQuoteID.Valid {
				quotes = repository.ExcludingSelected(quotes, selectedQuoteID.String)
			}
		}

		if field := c.Query("sortBy"); field != "" {
			state := repository.SortState{Field: field, Descending: c.Query("direction") == "desc"}
			repository.SortQuotes(quotes, state)
		}

		c.JSON(http.StatusOK, models.QuotesResponse{Quotes: quotes})
	}
}

// splitVariantPath parses the hyphen-joined variant segment of routes like
// /update-preQuotes/export-fcl into its (orderType, shipmentType) pair.
func splitVariantPath(variant string) (string, string, bool) {
	parts := strings.SplitN(variant, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	orderType, shipmentType := parts[0], parts[1]
	switch models.OrderType(orderType) {
	case models.OrderTypeImport, models.OrderTypeExport:
	default:
		return "", "", false
	}
	switch models.ShipmentType(shipmentType) {
	case models.ShipmentAirFreight, models.ShipmentLCL, models.ShipmentFCL:
	default:
		return "", "", false
	}
	return orderType, shipmentType, true
}

// UpdatePreQuote edits a quote before selection
// @Summary Update quote
// @Description Applies the changed commercial fields to a quote that has not been selected yet. The route encodes the order variant, e.g. export-fcl.
// @Tags quotes
// @Accept json
// @Produce json
// @Param variant path string true "orderType-shipmentType, e.g. export-fcl"
// @Param request body models.UpdatePreQuoteRequest true "Changed fields"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/update/update-preQuotes/{variant} [post]
func UpdatePreQuote(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderType, shipmentType, ok := splitVariantPath(c.Param("variant"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown order variant " + c.Param("variant")})
			return
		}

		var req models.UpdatePreQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		// The route's variant must match the order being edited.
		var gotOrderType, gotShipmentType string
		var selectedQuoteID sql.NullString
		err := db.QueryRow(`SELECT order_type, shipment_type, selected_quote_id FROM orders WHERE order_number = $1`, req.OrderNumber).
			Scan(&gotOrderType, &gotShipmentType, &selectedQuoteID)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check order", "details": err.Error()})
			return
		}
		if gotOrderType != orderType || gotShipmentType != shipmentType {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Order variant mismatch"})
			return
		}
		if selectedQuoteID.Valid && selectedQuoteID.String == req.OrderQuoteID {
			c.JSON(http.StatusConflict, gin.H{"message": "Selected quote can no longer be edited"})
			return
		}

		set := ""
		args := []interface{}{}
		add := func(column string, value interface{}) {
			if set != "" {
				set += ", "
			}
			args = append(args, value)
			set += fmt.Sprintf("%s = $%d", column, len(args))
		}
		if req.NetFreight != nil {
			add("net_freight", *req.NetFreight)
		}
		if req.AWBFee != nil {
			add("awb_fee", *req.AWBFee)
		}
		if req.TotalFreight != nil {
			add("total_freight", *req.TotalFreight)
		}
		if req.DOFee != nil {
			add("do_fee", *req.DOFee)
		}
		if req.DTHC != nil {
			add("dthc", *req.DTHC)
		}
		if req.FreeTime != nil {
			add("free_time", *req.FreeTime)
		}
		if req.TransitTime != nil {
			add("transit_time", *req.TransitTime)
		}
		if req.Carrier != nil {
			add("carrier", *req.Carrier)
		}
		if req.TransShipmentPort != nil {
			add("trans_shipment_port", *req.TransShipmentPort)
		}
		if req.VesselOrFlight != nil {
			add("vessel_or_flight", *req.VesselOrFlight)
		}
		if req.ValidityDate != nil {
			add("validity_date", *req.ValidityDate)
			// A fresh validity date revives a quote the sweep had expired.
			add("expired", false)
		}
		if len(args) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
			return
		}

		args = append(args, req.OrderQuoteID, req.OrderNumber)
		query := fmt.Sprintf(`UPDATE freight_quotes SET %s WHERE order_quote_id = $%d AND order_number = $%d`,
			set, len(args)-1, len(args))

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update quote", "details": err.Error()})
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Quote not found"})
			return
		}

		logActivity(c, "Quote", "Update", "Quote "+req.OrderQuoteID+" updated", req.OrderNumber)
		c.JSON(http.StatusOK, gin.H{"message": "Quote updated"})
	}
}
