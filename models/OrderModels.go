package models

import (
	"fmt"
	"time"
)

// OrderType classifies an order as inbound or outbound freight.
type OrderType string

const (
	OrderTypeImport OrderType = "import"
	OrderTypeExport OrderType = "export"
)

// ShipmentType selects which variant attribute set applies to an order.
type ShipmentType string

const (
	ShipmentAirFreight ShipmentType = "airFreight"
	ShipmentLCL        ShipmentType = "lcl"
	ShipmentFCL        ShipmentType = "fcl"
)

// Order statuses. An order is created in-progress (awaiting quotes and
// selection) and ends in exactly one of the terminal statuses.
const (
	StatusInProgress = "in-progress"
	StatusPending    = "pending"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// AirFreightDetails holds the attributes specific to air-freight shipments.
type AirFreightDetails struct {
	CargoType        string  `json:"cargoType"`
	NoOfPallets      int     `json:"noOfPallets"`
	GrossWeight      float64 `json:"grossWeight"`
	ChargeableWeight float64 `json:"chargeableWeight"`
	CargoCBM         float64 `json:"cargoCBM"`
}

// LCLDetails holds the attributes specific to less-than-container-load
// shipments.
type LCLDetails struct {
	CargoType   string  `json:"cargoType"`
	NoOfPallets int     `json:"noOfPallets"`
	GrossWeight float64 `json:"grossWeight"`
	CargoCBM    float64 `json:"cargoCBM"`
}

// FCLDetails holds the attributes specific to full-container-load shipments.
type FCLDetails struct {
	NoOfContainers int    `json:"noOfContainers"`
	ContainerType  string `json:"containerType"`
}

// Order is one shipment request. Exactly one of AirFreight, LCL and FCL is
// populated, matching ShipmentType.
type Order struct {
	ID                int                `json:"id"`
	OrderNumber       string             `json:"orderNumber"`
	OrderType         OrderType          `json:"orderType"`
	ShipmentType      ShipmentType       `json:"shipmentType"`
	RouteFrom         string             `json:"routeFrom"`
	RouteTo           string             `json:"routeTo"`
	ShipmentReadyDate string             `json:"shipmentReadyDate"`
	TargetDate        string             `json:"targetDate,omitempty"`
	DeliveryTerm      string             `json:"DeliveryTerm"`
	CargoDescription  string             `json:"type"`
	Status            string             `json:"status"`
	SelectedQuoteID   string             `json:"selectedQuoteID,omitempty"`
	CancelReason      string             `json:"cancelReason,omitempty"`
	AirFreight        *AirFreightDetails `json:"airFreight,omitempty"`
	LCL               *LCLDetails        `json:"lcl,omitempty"`
	FCL               *FCLDetails        `json:"fcl,omitempty"`
	CreatedUser       string             `json:"createdUser,omitempty"`
	CreatedAt         time.Time          `json:"createdAt,omitempty"`
}

// CreateOrderRequest is the flat form payload the UI submits. Field names
// mirror the wire format of the order forms (DeliveryTerm is capitalised
// there, "type" is the free-text cargo description).
type CreateOrderRequest struct {
	OrderNumber       string `json:"orderNumber"`
	OrderType         string `json:"orderType"`
	ShipmentType      string `json:"shipmentType"`
	RouteFrom         string `json:"routeFrom"`
	RouteTo           string `json:"routeTo"`
	ShipmentReadyDate string `json:"shipmentReadyDate"`
	TargetDate        string `json:"targetDate"`
	DeliveryTerm      string `json:"DeliveryTerm"`
	CargoDescription  string `json:"type"`

	CargoType        string  `json:"cargoType"`
	NoOfPallets      int     `json:"noOfPallets"`
	GrossWeight      float64 `json:"grossWeight"`
	ChargeableWeight float64 `json:"chargeableWeight"`
	CargoCBM         float64 `json:"cargoCBM"`

	NoOfContainers int    `json:"noOfContainers"`
	ContainerType  string `json:"containerType"`
}

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidateCreateOrder applies the submission rules: order number, route
// endpoints, ready date, delivery term and cargo description are always
// mandatory; the shipment-type-specific set is mandatory per variant. The
// returned map is empty when the request may be submitted.
func ValidateCreateOrder(req CreateOrderRequest) map[string]string {
	errs := map[string]string{}

	if req.OrderNumber == "" {
		errs["orderNumber"] = "order number is required"
	}
	if req.RouteFrom == "" {
		errs["routeFrom"] = "origin is required"
	}
	if req.RouteTo == "" {
		errs["routeTo"] = "destination is required"
	}
	if req.ShipmentReadyDate == "" {
		errs["shipmentReadyDate"] = "shipment ready date is required"
	} else if !validDate(req.ShipmentReadyDate) {
		errs["shipmentReadyDate"] = "shipment ready date must be YYYY-MM-DD"
	}
	if req.TargetDate != "" && !validDate(req.TargetDate) {
		errs["targetDate"] = "target date must be YYYY-MM-DD"
	}
	if req.DeliveryTerm == "" {
		errs["DeliveryTerm"] = "delivery term is required"
	}
	if req.CargoDescription == "" {
		errs["type"] = "cargo description is required"
	}

	switch OrderType(req.OrderType) {
	case OrderTypeImport, OrderTypeExport:
	default:
		errs["orderType"] = "order type must be import or export"
	}

	switch ShipmentType(req.ShipmentType) {
	case ShipmentAirFreight:
		if req.GrossWeight <= 0 {
			errs["grossWeight"] = "gross weight is required"
		}
		if req.ChargeableWeight <= 0 {
			errs["chargeableWeight"] = "chargeable weight is required"
		}
	case ShipmentLCL:
		if req.GrossWeight <= 0 {
			errs["grossWeight"] = "gross weight is required"
		}
		if req.CargoCBM <= 0 {
			errs["cargoCBM"] = "cargo CBM is required"
		}
	case ShipmentFCL:
		if req.NoOfContainers <= 0 {
			errs["noOfContainers"] = "number of containers is required"
		}
	default:
		errs["shipmentType"] = "shipment type must be airFreight, lcl or fcl"
	}

	return errs
}

// BuildOrder assembles an Order from a validated request, populating exactly
// the variant matching the shipment type and discarding fields that belong to
// the others, so a stale draft can never leak mismatched attributes.
func BuildOrder(req CreateOrderRequest) (Order, error) {
	order := Order{
		OrderNumber:       req.OrderNumber,
		OrderType:         OrderType(req.OrderType),
		ShipmentType:      ShipmentType(req.ShipmentType),
		RouteFrom:         req.RouteFrom,
		RouteTo:           req.RouteTo,
		ShipmentReadyDate: req.ShipmentReadyDate,
		TargetDate:        req.TargetDate,
		DeliveryTerm:      req.DeliveryTerm,
		CargoDescription:  req.CargoDescription,
		Status:            StatusInProgress,
	}

	switch order.ShipmentType {
	case ShipmentAirFreight:
		order.AirFreight = &AirFreightDetails{
			CargoType:        req.CargoType,
			NoOfPallets:      req.NoOfPallets,
			GrossWeight:      req.GrossWeight,
			ChargeableWeight: req.ChargeableWeight,
			CargoCBM:         req.CargoCBM,
		}
	case ShipmentLCL:
		order.LCL = &LCLDetails{
			CargoType:   req.CargoType,
			NoOfPallets: req.NoOfPallets,
			GrossWeight: req.GrossWeight,
			CargoCBM:    req.CargoCBM,
		}
	case ShipmentFCL:
		order.FCL = &FCLDetails{
			NoOfContainers: req.NoOfContainers,
			ContainerType:  req.ContainerType,
		}
	default:
		return Order{}, fmt.Errorf("unknown shipment type %q", req.ShipmentType)
	}

	return order, nil
}
