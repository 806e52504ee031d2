package models

import "time"

// FreightQuote is one agent's bid against an order. Commercial fields that do
// not apply to a given shipment type are simply zero on the wire; OrderQuoteID
// and Agent keep their historical capitalised JSON keys.
type FreightQuote struct {
	OrderQuoteID      string    `json:"OrderQuoteID"`
	OrderNumber       string    `json:"orderNumber"`
	Agent             string    `json:"Agent"`
	AgentID           int       `json:"agentID"`
	CreatedUser       string    `json:"createdUser"`
	NetFreight        float64   `json:"netFreight"`
	AWBFee            float64   `json:"awbFee"`
	TotalFreight      float64   `json:"totalFreight"`
	DOFee             float64   `json:"doFee"`
	DTHC              float64   `json:"dthc"`
	FreeTime          string    `json:"freeTime"`
	TransitTime       string    `json:"transitTime"`
	Carrier           string    `json:"carrier"`
	TransShipmentPort string    `json:"transShipmentPort"`
	VesselOrFlight    string    `json:"vesselOrFlight"`
	ValidityDate      string    `json:"validityDate"`
	Expired           bool      `json:"expired"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

// AddQuoteRequest is the payload a freight agent submits against an order.
type AddQuoteRequest struct {
	OrderNumber       string  `json:"orderNumber" binding:"required"`
	NetFreight        float64 `json:"netFreight"`
	AWBFee            float64 `json:"awbFee"`
	TotalFreight      float64 `json:"totalFreight" binding:"required"`
	DOFee             float64 `json:"doFee"`
	DTHC              float64 `json:"dthc"`
	FreeTime          string  `json:"freeTime"`
	TransitTime       string  `json:"transitTime"`
	Carrier           string  `json:"carrier"`
	TransShipmentPort string  `json:"transShipmentPort"`
	VesselOrFlight    string  `json:"vesselOrFlight"`
	ValidityDate      string  `json:"validityDate"`
}

// UpdatePreQuoteRequest edits an existing quote before selection. Only the
// changed commercial fields travel; identity fields are mandatory.
type UpdatePreQuoteRequest struct {
	OrderNumber       string   `json:"orderNumber" binding:"required"`
	OrderQuoteID      string   `json:"OrderQuoteID" binding:"required"`
	NetFreight        *float64 `json:"netFreight"`
	AWBFee            *float64 `json:"awbFee"`
	TotalFreight      *float64 `json:"totalFreight"`
	DOFee             *float64 `json:"doFee"`
	DTHC              *float64 `json:"dthc"`
	FreeTime          *string  `json:"freeTime"`
	TransitTime       *string  `json:"transitTime"`
	Carrier           *string  `json:"carrier"`
	TransShipmentPort *string  `json:"transShipmentPort"`
	VesselOrFlight    *string  `json:"vesselOrFlight"`
	ValidityDate      *string  `json:"validityDate"`
}
