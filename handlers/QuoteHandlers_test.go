package handlers

import "testing"

func TestSplitVariantPath(t *testing.T) {
	tests := []struct {
		variant      string
		orderType    string
		shipmentType string
		ok           bool
	}{
		{"export-fcl", "export", "fcl", true},
		{"import-airFreight", "import", "airFreight", true},
		{"import-lcl", "import", "lcl", true},
		{"export", "", "", false},
		{"transit-fcl", "", "", false},
		{"export-rail", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		orderType, shipmentType, ok := splitVariantPath(tt.variant)
		if ok != tt.ok || orderType != tt.orderType || shipmentType != tt.shipmentType {
			t.Fatalf("splitVariantPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.variant, orderType, shipmentType, ok, tt.orderType, tt.shipmentType, tt.ok)
		}
	}
}
