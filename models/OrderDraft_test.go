package models

import "testing"

func TestNewOrderDraftSeedsVariantFields(t *testing.T) {
	d := NewOrderDraft(OrderTypeImport, ShipmentFCL)
	fields := d.Fields()

	for _, name := range []string{"orderNumber", "routeFrom", "noOfContainers", "containerType"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("fcl draft missing field %s: %v", name, fields)
		}
	}
	if _, ok := fields["chargeableWeight"]; ok {
		t.Fatalf("fcl draft should not carry air freight fields")
	}
	if fields["orderType"] != "import" || fields["shipmentType"] != "fcl" {
		t.Fatalf("type fields not seeded: %v", fields)
	}
}

func TestSetFieldPreservesOthers(t *testing.T) {
	d := NewOrderDraft(OrderTypeExport, ShipmentAirFreight)
	d.SetField("routeFrom", "CMB")
	d.SetField("grossWeight", "1200")

	if d.Field("routeFrom") != "CMB" || d.Field("grossWeight") != "1200" {
		t.Fatalf("set fields lost: %v", d.Fields())
	}
	if d.Field("routeTo") != "" {
		t.Fatalf("untouched field changed: %q", d.Field("routeTo"))
	}

	// Names outside the variant's field set are dropped.
	d.SetField("noOfContainers", "2")
	if _, ok := d.Fields()["noOfContainers"]; ok {
		t.Fatalf("foreign field accepted into air freight draft")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	d := NewOrderDraft(OrderTypeImport, ShipmentLCL)
	d.SetField("orderNumber", "ORD-5")
	d.SetField("cargoCBM", "12")

	d.Reset()
	if d.Field("orderNumber") != "" || d.Field("cargoCBM") != "" {
		t.Fatalf("reset kept edits: %v", d.Fields())
	}
	if d.Field("shipmentType") != "lcl" {
		t.Fatalf("reset dropped shipment type: %v", d.Fields())
	}
}
