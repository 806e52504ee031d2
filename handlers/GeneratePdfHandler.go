package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"
	"time"

	"backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel draws text onto the QR image at the given position.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16
	if bold {
		col = color.RGBA{30, 30, 30, 255}
		face = inconsolata.Bold8x16
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

// trackingURL is the payload encoded in order QR codes.
func trackingURL(baseURL, orderNumber string) string {
	return fmt.Sprintf("%s/orders/%s", baseURL, orderNumber)
}

// GenerateOrderQR serves a labeled tracking QR code as JPEG
// @Summary      Order tracking QR
// @Tags         orders
// @Produce      jpeg
// @Param        orderNumber  path  string  true  "Order number"
// @Success      200  {file}  file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/order-qr/{orderNumber} [get]
func GenerateOrderQR(db *sql.DB, frontendBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		var status, routeFrom, routeTo string
		err := db.QueryRow(`SELECT status, route_from, route_to FROM orders WHERE order_number = $1`, orderNumber).
			Scan(&status, &routeFrom, &routeTo)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load order", "details": err.Error()})
			return
		}

		qr, err := qrcode.New(trackingURL(frontendBaseURL, orderNumber), qrcode.Medium)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "QR code generation failed"})
			return
		}
		qrImg := qr.Image(512)

		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		textAreaHeight := 3*lineHeight + padding
		totalHeight := qrSize + padding + textAreaHeight

		combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
		draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
		draw.Draw(combinedImg, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20
		addLabel(combinedImg, xPos, startY, "Order:", true)
		addLabel(combinedImg, xPos+120, startY, orderNumber, false)
		addLabel(combinedImg, xPos, startY+lineHeight, "Route:", true)
		addLabel(combinedImg, xPos+120, startY+lineHeight, routeFrom+" -> "+routeTo, false)
		addLabel(combinedImg, xPos, startY+2*lineHeight, "Status:", true)
		addLabel(combinedImg, xPos+120, startY+2*lineHeight, status, false)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combinedImg, &jpeg.Options{Quality: 90}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to encode image"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="order-%s.jpg"`, orderNumber))
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}

// GenerateOrderSummaryPDF renders the quote comparison as a PDF
// @Summary      Order summary PDF
// @Description  Order header, active quotes sorted by total freight, and a tracking QR code
// @Tags         orders
// @Produce      application/pdf
// @Param        orderNumber  path  string  true  "Order number"
// @Success      200  {file}  file  "PDF document"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/order-summary-pdf/{orderNumber} [get]
func GenerateOrderSummaryPDF(db *sql.DB, frontendBaseURL string) gin.HandlerFunc {
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

		quotes, err := LoadQuotes(db, orderNumber)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load quotes", "details": err.Error()})
			return
		}
		quotes = repository.ActiveQuotes(quotes, time.Now())
		repository.SortQuotes(quotes, repository.SortState{Field: "totalFreight"})

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(190, 10, "ORDER SUMMARY")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(95, 6, fmt.Sprintf("Order No: %s", order.OrderNumber))
		pdf.Cell(95, 6, fmt.Sprintf("Status: %s", order.Status))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(95, 6, fmt.Sprintf("Type: %s / %s", order.OrderType, order.ShipmentType))
		pdf.Cell(95, 6, fmt.Sprintf("Route: %s -> %s", order.RouteFrom, order.RouteTo))
		pdf.Ln(6)
		pdf.Cell(95, 6, fmt.Sprintf("Ready Date: %s", order.ShipmentReadyDate))
		pdf.Cell(95, 6, fmt.Sprintf("Delivery Term: %s", order.DeliveryTerm))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(45, 8, "Agent", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Net Freight", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Carrier", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "Transit", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Valid Until", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, q := range quotes {
			marker := ""
			if order.SelectedQuoteID == q.OrderQuoteID {
				marker = " *"
			}
			pdf.CellFormat(45, 8, q.Agent+marker, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", q.NetFreight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", q.TotalFreight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 8, q.Carrier, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 8, q.TransitTime, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 8, q.ValidityDate, "1", 1, "C", false, 0, "")
		}
		if len(quotes) == 0 {
			pdf.CellFormat(190, 8, "No active quotes", "1", 1, "C", false, 0, "")
		}
		if order.SelectedQuoteID != "" {
			pdf.Ln(4)
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(190, 6, "* selected quote")
		}

		// Tracking QR in the bottom-right corner.
		png, err := qrcode.Encode(trackingURL(frontendBaseURL, orderNumber), qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("tracking-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("tracking-qr", 160, 240, 35, 35, false, opts, 0, "")
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render PDF", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order-%s.pdf"`, orderNumber))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
