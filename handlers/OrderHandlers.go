package handlers

import (
	"database/sql"
	"net/http"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// SQL for the orders table. Variant columns not applying to a row's shipment
// type stay at their zero defaults; reconstruction into the variant structs
// happens in scanOrder.
const (
	createOrdersTableSQL = `
		CREATE TABLE IF NOT EXISTS orders (
			id                  SERIAL PRIMARY KEY,
			order_number        TEXT NOT NULL UNIQUE,
			order_type          TEXT NOT NULL,
			shipment_type       TEXT NOT NULL,
			route_from          TEXT NOT NULL,
			route_to            TEXT NOT NULL,
			shipment_ready_date TEXT NOT NULL,
			target_date         TEXT NOT NULL DEFAULT '',
			delivery_term       TEXT NOT NULL,
			cargo_description   TEXT NOT NULL,
			status              TEXT NOT NULL DEFAULT 'in-progress',
			selected_quote_id   TEXT,
			cancel_reason       TEXT NOT NULL DEFAULT '',
			cargo_type          TEXT NOT NULL DEFAULT '',
			no_of_pallets       INT NOT NULL DEFAULT 0,
			gross_weight        DOUBLE PRECISION NOT NULL DEFAULT 0,
			chargeable_weight   DOUBLE PRECISION NOT NULL DEFAULT 0,
			cargo_cbm           DOUBLE PRECISION NOT NULL DEFAULT 0,
			no_of_containers    INT NOT NULL DEFAULT 0,
			container_type      TEXT NOT NULL DEFAULT '',
			created_user        TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	insertOrderSQL = `
		INSERT INTO orders (order_number, order_type, shipment_type, route_from, route_to,
			shipment_ready_date, target_date, delivery_term, cargo_description, status,
			cargo_type, no_of_pallets, gross_weight, chargeable_weight, cargo_cbm,
			no_of_containers, container_type, created_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at`

	selectOrderColumns = `
		id, order_number, order_type, shipment_type, route_from, route_to,
		shipment_ready_date, target_date, delivery_term, cargo_description, status,
		selected_quote_id, cancel_reason, cargo_type, no_of_pallets, gross_weight,
		chargeable_weight, cargo_cbm, no_of_containers, container_type, created_user, created_at`
)

// EnsureOrderTables creates the orders and freight_quotes tables.
func EnsureOrderTables(db *sql.DB) error {
	if _, err := db.Exec(createOrdersTableSQL); err != nil {
		return err
	}
	_, err := db.Exec(createQuotesTableSQL)
	return err
}

type orderScanner interface {
	Scan(dest ...interface{}) error
}

// scanOrder maps one row to an Order, populating exactly the variant struct
// matching shipment_type.
func scanOrder(row orderScanner) (models.Order, error) {
	var o models.Order
	var selectedQuoteID sql.NullString
	var cargoType, containerType string
	var noOfPallets, noOfContainers int
	var grossWeight, chargeableWeight, cargoCBM float64

	err := row.Scan(&o.ID, &o.OrderNumber, &o.OrderType, &o.ShipmentType, &o.RouteFrom, &o.RouteTo,
		&o.ShipmentReadyDate, &o.TargetDate, &o.DeliveryTerm, &o.CargoDescription, &o.Status,
		&selectedQuoteID, &o.CancelReason, &cargoType, &noOfPallets, &grossWeight,
		&chargeableWeight, &cargoCBM, &noOfContainers, &containerType, &o.CreatedUser, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	if selectedQuoteID.Valid {
		o.SelectedQuoteID = selectedQuoteID.String
	}

	switch o.ShipmentType {
	case models.ShipmentAirFreight:
		o.AirFreight = &models.AirFreightDetails{
			CargoType:        cargoType,
			NoOfPallets:      noOfPallets,
			GrossWeight:      grossWeight,
			ChargeableWeight: chargeableWeight,
			CargoCBM:         cargoCBM,
		}
	case models.ShipmentLCL:
		o.LCL = &models.LCLDetails{
			CargoType:   cargoType,
			NoOfPallets: noOfPallets,
			GrossWeight: grossWeight,
			CargoCBM:    cargoCBM,
		}
	case models.ShipmentFCL:
		o.FCL = &models.FCLDetails{
			NoOfContainers: noOfContainers,
			ContainerType:  containerType,
		}
	}

	return o, nil
}

// CreateOrder submits a new shipment order
// @Summary Create order
// @Description Validates the order form; on any missing required field returns a field-to-message error map and touches no storage
// @Tags orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order form"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/insert/create-order [post]
func CreateOrder(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "details": err.Error()})
			return
		}

		if errs := models.ValidateCreateOrder(req); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
				Message: "Validation failed",
				Errors:  errs,
			})
			return
		}

		order, err := models.BuildOrder(req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if user := currentUser(c); user != nil {
			order.CreatedUser = user.Email
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		err = db.QueryRowContext(ctx, insertOrderSQL,
			order.OrderNumber, order.OrderType, order.ShipmentType, order.RouteFrom, order.RouteTo,
			order.ShipmentReadyDate, order.TargetDate, order.DeliveryTerm, order.CargoDescription, order.Status,
			req.CargoType, req.NoOfPallets, req.GrossWeight, req.ChargeableWeight, req.CargoCBM,
			req.NoOfContainers, req.ContainerType, order.CreatedUser,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"message": "Order number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order", "details": err.Error()})
			return
		}

		logActivity(c, "Order", "Post", "Order created", order.OrderNumber)
		c.JSON(http.StatusOK, order)
	}
}

// ViewOrders lists orders for the exporter or importer view
// @Summary List orders
// @Description Orders filtered by order type (route param exporter|importer) and optional status
// @Tags orders
// @Produce json
// @Param view path string true "exporter or importer"
// @Param status query string false "in-progress, pending, completed or cancelled"
// @Success 200 {object} models.OrdersResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/select/view-orders/{view} [get]
func ViewOrders(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orderType models.OrderType
		switch c.Param("view") {
		case "exporter":
			orderType = models.OrderTypeExport
		case "importer":
			orderType = models.OrderTypeImport
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "View must be exporter or importer"})
			return
		}

		query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE order_type = $1`
		args := []interface{}{string(orderType)}
		if status := c.Query("status"); status != "" {
			query += ` AND status = $2`
			args = append(args, status)
		}
		query += ` ORDER BY created_at DESC`

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load orders", "details": err.Error()})
			return
		}
		defer rows.Close()

		orders := []models.Order{}
		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read order row", "details": err.Error()})
				return
			}
			orders = append(orders, o)
		}

		c.JSON(http.StatusOK, models.OrdersResponse{Orders: orders})
	}
}

// GetOrder fetches a single order by order number
// @Summary Get order
// @Tags orders
// @Produce json
// @Param orderNumber path string true "Order number"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.ErrorResponse
// @Router /api/select/order/{orderNumber} [get]
func GetOrder(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		row := db.QueryRow(`SELECT `+selectOrderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
		order, err := scanOrder(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load order", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
