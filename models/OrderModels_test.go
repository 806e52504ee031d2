package models

import "testing"

func validAirRequest() CreateOrderRequest {
	return CreateOrderRequest{
		OrderNumber:       "ORD-100",
		OrderType:         "export",
		ShipmentType:      "airFreight",
		RouteFrom:         "CMB",
		RouteTo:           "DXB",
		ShipmentReadyDate: "2026-09-20",
		DeliveryTerm:      "CIF",
		CargoDescription:  "garments",
		CargoType:         "general",
		NoOfPallets:       4,
		GrossWeight:       1200,
		ChargeableWeight:  1350,
		CargoCBM:          8.5,
	}
}

func TestValidateCreateOrderMissingCommonFields(t *testing.T) {
	errs := ValidateCreateOrder(CreateOrderRequest{OrderType: "import", ShipmentType: "fcl", NoOfContainers: 1})
	if len(errs) == 0 {
		t.Fatalf("expected validation errors for empty request")
	}
	for _, field := range []string{"orderNumber", "routeFrom", "routeTo", "shipmentReadyDate", "DeliveryTerm", "type"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateCreateOrderFCLScenario(t *testing.T) {
	req := CreateOrderRequest{
		OrderNumber:       "X1",
		OrderType:         "import",
		ShipmentType:      "fcl",
		RouteFrom:         "CN",
		RouteTo:           "LK",
		ShipmentReadyDate: "2026-10-01",
		DeliveryTerm:      "FOB",
		CargoDescription:  "general",
		NoOfContainers:    2,
	}
	if errs := ValidateCreateOrder(req); len(errs) != 0 {
		t.Fatalf("expected no errors for complete FCL request, got %v", errs)
	}

	req.NoOfContainers = 0
	errs := ValidateCreateOrder(req)
	if _, ok := errs["noOfContainers"]; !ok {
		t.Fatalf("expected noOfContainers error, got %v", errs)
	}
}

func TestValidateCreateOrderVariantFields(t *testing.T) {
	air := validAirRequest()
	air.ChargeableWeight = 0
	errs := ValidateCreateOrder(air)
	if _, ok := errs["chargeableWeight"]; !ok {
		t.Fatalf("expected chargeableWeight error for air freight, got %v", errs)
	}

	lcl := validAirRequest()
	lcl.ShipmentType = "lcl"
	lcl.CargoCBM = 0
	errs = ValidateCreateOrder(lcl)
	if _, ok := errs["cargoCBM"]; !ok {
		t.Fatalf("expected cargoCBM error for lcl, got %v", errs)
	}
}

func TestValidateCreateOrderRejectsBadEnums(t *testing.T) {
	req := validAirRequest()
	req.OrderType = "transit"
	req.ShipmentType = "rail"
	errs := ValidateCreateOrder(req)
	if _, ok := errs["orderType"]; !ok {
		t.Fatalf("expected orderType error, got %v", errs)
	}
	if _, ok := errs["shipmentType"]; !ok {
		t.Fatalf("expected shipmentType error, got %v", errs)
	}
}

func TestValidateCreateOrderBadDate(t *testing.T) {
	req := validAirRequest()
	req.ShipmentReadyDate = "20-09-2026"
	errs := ValidateCreateOrder(req)
	if _, ok := errs["shipmentReadyDate"]; !ok {
		t.Fatalf("expected shipmentReadyDate format error, got %v", errs)
	}
}

func TestBuildOrderPopulatesExactlyOneVariant(t *testing.T) {
	order, err := BuildOrder(validAirRequest())
	if err != nil {
		t.Fatalf("BuildOrder failed: %v", err)
	}
	if order.AirFreight == nil {
		t.Fatalf("air freight variant not populated")
	}
	if order.LCL != nil || order.FCL != nil {
		t.Fatalf("foreign variants populated: lcl=%v fcl=%v", order.LCL, order.FCL)
	}
	if order.Status != StatusInProgress {
		t.Fatalf("new order status = %s, want %s", order.Status, StatusInProgress)
	}
	if order.AirFreight.GrossWeight != 1200 || order.AirFreight.ChargeableWeight != 1350 {
		t.Fatalf("variant fields lost: %+v", order.AirFreight)
	}

	fcl := validAirRequest()
	fcl.ShipmentType = "fcl"
	fcl.NoOfContainers = 3
	order, err = BuildOrder(fcl)
	if err != nil {
		t.Fatalf("BuildOrder failed: %v", err)
	}
	if order.FCL == nil || order.AirFreight != nil || order.LCL != nil {
		t.Fatalf("fcl request built wrong variants: %+v", order)
	}
	// Weights belong to the other variants and must be discarded.
	if order.FCL.NoOfContainers != 3 {
		t.Fatalf("noOfContainers = %d, want 3", order.FCL.NoOfContainers)
	}
}

func TestBuildOrderUnknownShipmentType(t *testing.T) {
	req := validAirRequest()
	req.ShipmentType = "rail"
	if _, err := BuildOrder(req); err == nil {
		t.Fatalf("expected error for unknown shipment type")
	}
}
