package models

import (
	"time"
)

// Base model fields shared by all database entities
type Base struct {
	UUID      string    `json:"uuid" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusTag is the planning-side annotation on an intake ticket. It is a
// scheduling hint, not the authoritative delivery status.
type StatusTag string

const (
	// TagScheduled represents a load that is expected as planned
	TagScheduled StatusTag = "scheduled"
	// TagDelayed represents a load that is running late
	TagDelayed StatusTag = "delayed"
	// TagMoved represents a load rescheduled to another date
	TagMoved StatusTag = "moved"
	// TagArrived represents a load that has shown up at the site
	TagArrived StatusTag = "arrived"
)

// DeliveryStatus is the authoritative status of a delivery record
type DeliveryStatus string

const (
	// DeliveryScheduled represents a load not yet confirmed delivered
	DeliveryScheduled DeliveryStatus = "scheduled"
	// DeliveryDelivered represents a load confirmed delivered by field staff
	DeliveryDelivered DeliveryStatus = "delivered"
)

// Severity grades a contamination event
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Client represents a waste-diversion client organization
type Client struct {
	Base
	Name         string `json:"name" gorm:"column:name"`
	ContactName  string `json:"contact_name" gorm:"column:contact_name"`
	ContactEmail string `json:"contact_email" gorm:"column:contact_email"`
	ContactPhone string `json:"contact_phone" gorm:"column:contact_phone"`
	Active       bool   `json:"active" gorm:"column:active"`
}

// Contract represents a diversion contract with a client
type Contract struct {
	Base
	Client      *Client    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ClientID    string     `json:"client_id" gorm:"type:uuid;column:client_id"`
	ProjectCode string     `json:"project_code" gorm:"column:project_code;uniqueIndex"`
	StartDate   *time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate     *time.Time `json:"end_date" gorm:"column:end_date"`
	TonsPerLoad float64    `json:"tons_per_load" gorm:"column:tons_per_load"`
	Active      bool       `json:"active" gorm:"column:active"`
}

// IntakeTicket is one expected load on the delivery schedule. VRNumber is
// null until dispatch assigns a reference; such tickets still count toward
// day rollups but have no per-record detail view. Tickets are never deleted
// during normal operation: a moved load keeps its row and gets a new
// scheduled date plus the "moved" tag.
type IntakeTicket struct {
	Base
	VRNumber        *string   `json:"vr_number" gorm:"column:vr_number;uniqueIndex"`
	ScheduledDate   time.Time `json:"scheduled_date" gorm:"column:scheduled_date;index"`
	ScheduledWindow string    `json:"scheduled_window" gorm:"column:scheduled_window"`
	StatusTag       StatusTag `json:"status_tag" gorm:"column:status_tag"`
	Note            string    `json:"note" gorm:"column:note"`
	ETA             string    `json:"eta" gorm:"column:eta"`
	Contract        *Contract `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
	ContractID      *string   `json:"contract_id" gorm:"type:uuid;column:contract_id"`
}

// DeliveryRecord is the outcome-side record for one VR number, created
// lazily on the first field interaction (photo upload or delivered-marking).
// DeliveredAt is non-nil iff Status is delivered.
type DeliveryRecord struct {
	Base
	VRNumber         string         `json:"vr_number" gorm:"column:vr_number;uniqueIndex"`
	Status           DeliveryStatus `json:"status" gorm:"column:status"`
	LoadNumber       int            `json:"load_number" gorm:"column:load_number"`
	ScheduledDate    time.Time      `json:"scheduled_date" gorm:"column:scheduled_date;index"`
	DeliveredAt      *time.Time     `json:"delivered_at" gorm:"column:delivered_at"`
	DeliveredBy      string         `json:"delivered_by" gorm:"column:delivered_by"`
	Tonnage          float64        `json:"tonnage" gorm:"column:tonnage"`
	Notes            string         `json:"notes" gorm:"column:notes"`
	PhotoURLs        StringList     `json:"photo_urls" gorm:"column:photo_urls;type:jsonb"`
	WeightTicketURLs StringList     `json:"weight_ticket_urls" gorm:"column:weight_ticket_urls;type:jsonb"`
}

// Delivered reports whether the record has been confirmed delivered
func (r *DeliveryRecord) Delivered() bool {
	return r.Status == DeliveryDelivered
}

// ContaminationEvent is one logged contamination incident, optionally tied
// to a specific load
type ContaminationEvent struct {
	Base
	VRNumber    string     `json:"vr_number" gorm:"column:vr_number;index"`
	OccurredAt  time.Time  `json:"occurred_at" gorm:"column:occurred_at;index"`
	Material    string     `json:"material" gorm:"column:material"`
	Severity    Severity   `json:"severity" gorm:"column:severity"`
	Description string     `json:"description" gorm:"column:description"`
	PhotoURLs   StringList `json:"photo_urls" gorm:"column:photo_urls;type:jsonb"`
}
