package handlers

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"backend/models"
)

// stubRow feeds canned column values to scanOrder the way a database row
// would.
type stubRow struct {
	values []interface{}
}

func (r stubRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan expects %d columns, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *models.OrderType:
			*p = r.values[i].(models.OrderType)
		case *models.ShipmentType:
			*p = r.values[i].(models.ShipmentType)
		case *sql.NullString:
			*p = r.values[i].(sql.NullString)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan destination %T", d)
		}
	}
	return nil
}

// rowFor lays out an order's stored columns in selectOrderColumns order.
func rowFor(o models.Order, cargoType string, noOfPallets int, grossWeight, chargeableWeight, cargoCBM float64, noOfContainers int, containerType string) stubRow {
	return stubRow{values: []interface{}{
		o.ID, o.OrderNumber, o.OrderType, o.ShipmentType, o.RouteFrom, o.RouteTo,
		o.ShipmentReadyDate, o.TargetDate, o.DeliveryTerm, o.CargoDescription, o.Status,
		sql.NullString{String: o.SelectedQuoteID, Valid: o.SelectedQuoteID != ""}, o.CancelReason,
		cargoType, noOfPallets, grossWeight, chargeableWeight, cargoCBM,
		noOfContainers, containerType, o.CreatedUser, o.CreatedAt,
	}}
}

func TestScanOrderRoundTripAirFreight(t *testing.T) {
	req := models.CreateOrderRequest{
		OrderNumber:       "ORD-200",
		OrderType:         "export",
		ShipmentType:      "airFreight",
		RouteFrom:         "CMB",
		RouteTo:           "FRA",
		ShipmentReadyDate: "2026-09-25",
		TargetDate:        "2026-10-10",
		DeliveryTerm:      "CIF",
		CargoDescription:  "garments",
		CargoType:         "general",
		NoOfPallets:       6,
		GrossWeight:       1840.5,
		ChargeableWeight:  2010.25,
		CargoCBM:          11.3,
	}
	if errs := models.ValidateCreateOrder(req); len(errs) != 0 {
		t.Fatalf("request should validate clean, got %v", errs)
	}
	submitted, err := models.BuildOrder(req)
	if err != nil {
		t.Fatalf("BuildOrder failed: %v", err)
	}
	submitted.ID = 17
	submitted.CreatedAt = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	// Read the order back from its stored column layout.
	loaded, err := scanOrder(rowFor(submitted,
		req.CargoType, req.NoOfPallets, req.GrossWeight, req.ChargeableWeight, req.CargoCBM,
		req.NoOfContainers, req.ContainerType))
	if err != nil {
		t.Fatalf("scanOrder failed: %v", err)
	}

	if loaded.RouteFrom != submitted.RouteFrom || loaded.RouteTo != submitted.RouteTo {
		t.Fatalf("route changed: %s -> %s, want %s -> %s",
			loaded.RouteFrom, loaded.RouteTo, submitted.RouteFrom, submitted.RouteTo)
	}
	if loaded.ShipmentReadyDate != submitted.ShipmentReadyDate || loaded.TargetDate != submitted.TargetDate {
		t.Fatalf("dates changed: ready=%s target=%s", loaded.ShipmentReadyDate, loaded.TargetDate)
	}
	if loaded.AirFreight == nil {
		t.Fatalf("air freight variant not reconstructed: %+v", loaded)
	}
	if loaded.LCL != nil || loaded.FCL != nil {
		t.Fatalf("foreign variants reconstructed: lcl=%v fcl=%v", loaded.LCL, loaded.FCL)
	}
	if *loaded.AirFreight != *submitted.AirFreight {
		t.Fatalf("air freight fields changed: got %+v, want %+v", *loaded.AirFreight, *submitted.AirFreight)
	}
	if loaded.DeliveryTerm != submitted.DeliveryTerm || loaded.CargoDescription != submitted.CargoDescription {
		t.Fatalf("commercial terms changed: %+v", loaded)
	}
	if loaded.Status != models.StatusInProgress {
		t.Fatalf("status = %s, want %s", loaded.Status, models.StatusInProgress)
	}
}

func TestScanOrderReconstructsFCLVariant(t *testing.T) {
	order := models.Order{
		ID:                3,
		OrderNumber:       "X1",
		OrderType:         models.OrderTypeImport,
		ShipmentType:      models.ShipmentFCL,
		RouteFrom:         "CN",
		RouteTo:           "LK",
		ShipmentReadyDate: "2026-10-01",
		DeliveryTerm:      "FOB",
		CargoDescription:  "general",
		Status:            models.StatusInProgress,
		CreatedAt:         time.Now(),
	}

	loaded, err := scanOrder(rowFor(order, "", 0, 0, 0, 0, 2, "40HC"))
	if err != nil {
		t.Fatalf("scanOrder failed: %v", err)
	}
	if loaded.FCL == nil || loaded.AirFreight != nil || loaded.LCL != nil {
		t.Fatalf("fcl row built wrong variants: %+v", loaded)
	}
	if loaded.FCL.NoOfContainers != 2 || loaded.FCL.ContainerType != "40HC" {
		t.Fatalf("fcl fields = %+v", loaded.FCL)
	}
}
