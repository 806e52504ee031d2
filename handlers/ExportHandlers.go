package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var orderSheetHeaders = []string{
	"Order No", "Type", "Shipment", "From", "To", "Ready Date", "Target Date",
	"Delivery Term", "Cargo", "Status", "Selected Quote", "Created By",
}

var quoteSheetHeaders = []string{
	"Order No", "Quote ID", "Agent", "Net Freight", "AWB Fee", "Total Freight",
	"DO Fee", "DTHC", "Carrier", "Transit Time", "Validity", "Expired",
}

// ExportOrdersXLSX exports orders and their quotes as a workbook
// @Summary Export orders to Excel
// @Description One sheet of orders (optionally filtered by status) and one sheet of all their quotes
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter orders by status"
// @Success 200 {file} file "XLSX workbook"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export/orders-xlsx [get]
func ExportOrdersXLSX(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT ` + selectOrderColumns + ` FROM orders`
		args := []interface{}{}
		if status := c.Query("status"); status != "" {
			query += ` WHERE status = $1`
			args = append(args, status)
		}
		query += ` ORDER BY created_at DESC`

		ctx, cancel := utils.GetQueryContext(c.Request.Context(), utils.SlowQueryTimeout)
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

		f := excelize.NewFile()
		defer f.Close()

		const ordersSheet = "Orders"
		const quotesSheet = "Quotes"
		f.SetSheetName("Sheet1", ordersSheet)
		if _, err := f.NewSheet(quotesSheet); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build workbook", "details": err.Error()})
			return
		}

		for i, h := range orderSheetHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(ordersSheet, cell, h)
		}
		for i, h := range quoteSheetHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(quotesSheet, cell, h)
		}

		quoteRow := 2
		for i, o := range orders {
			rowNum := i + 2
			values := []interface{}{
				o.OrderNumber, string(o.OrderType), string(o.ShipmentType), o.RouteFrom, o.RouteTo,
				o.ShipmentReadyDate, o.TargetDate, o.DeliveryTerm, o.CargoDescription,
				o.Status, o.SelectedQuoteID, o.CreatedUser,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				f.SetCellValue(ordersSheet, cell, v)
			}

			quotes, err := LoadQuotes(db, o.OrderNumber)
			if err != nil {
				continue
			}
			for _, q := range quotes {
				values := []interface{}{
					q.OrderNumber, q.OrderQuoteID, q.Agent, q.NetFreight, q.AWBFee,
					q.TotalFreight, q.DOFee, q.DTHC, q.Carrier, q.TransitTime,
					q.ValidityDate, q.Expired,
				}
				for col, v := range values {
					cell, _ := excelize.CoordinatesToCellName(col+1, quoteRow)
					f.SetCellValue(quotesSheet, cell, v)
				}
				quoteRow++
			}
		}

		filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to write workbook", "details": err.Error()})
		}
	}
}
