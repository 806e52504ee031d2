package models

// OrderDraft is the in-memory form state for one order being composed: a
// flat mapping from field name to its current value, seeded with every field
// of the (orderType, shipmentType) variant so the form renderer can bind
// widgets without nil checks. Setting a field replaces that entry only;
// switching shipment type means constructing a fresh draft.
type OrderDraft struct {
	orderType    OrderType
	shipmentType ShipmentType
	fields       map[string]string
	defaults     map[string]string
}

var commonDraftFields = []string{
	"orderNumber", "routeFrom", "routeTo",
	"shipmentReadyDate", "targetDate", "DeliveryTerm", "type",
}

var variantDraftFields = map[ShipmentType][]string{
	ShipmentAirFreight: {"cargoType", "noOfPallets", "grossWeight", "chargeableWeight", "cargoCBM"},
	ShipmentLCL:        {"cargoType", "noOfPallets", "grossWeight", "cargoCBM"},
	ShipmentFCL:        {"noOfContainers", "containerType"},
}

// NewOrderDraft returns an empty draft for the given order/shipment type
// combination. Unknown shipment types get only the common field set.
func NewOrderDraft(orderType OrderType, shipmentType ShipmentType) *OrderDraft {
	defaults := map[string]string{
		"orderType":    string(orderType),
		"shipmentType": string(shipmentType),
	}
	for _, name := range commonDraftFields {
		defaults[name] = ""
	}
	for _, name := range variantDraftFields[shipmentType] {
		defaults[name] = ""
	}

	d := &OrderDraft{
		orderType:    orderType,
		shipmentType: shipmentType,
		defaults:     defaults,
	}
	d.Reset()
	return d
}

// SetField replaces one entry, preserving all others. Names outside the
// variant's field set are ignored rather than added, so a stale renderer
// cannot smuggle foreign fields into the draft.
func (d *OrderDraft) SetField(name, value string) {
	if _, ok := d.defaults[name]; !ok {
		return
	}
	d.fields[name] = value
}

// Field returns the current value for name.
func (d *OrderDraft) Field(name string) string {
	return d.fields[name]
}

// Fields returns a copy of the full field map.
func (d *OrderDraft) Fields() map[string]string {
	out := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// Reset restores the initial default record for the draft's variant.
func (d *OrderDraft) Reset() {
	d.fields = make(map[string]string, len(d.defaults))
	for k, v := range d.defaults {
		d.fields[k] = v
	}
}
