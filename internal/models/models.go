package models

import (
	"strings"
	"time"
)

// ComplaintStatus is the three-value complaint workflow enum. Any status may
// transition to any other; the type only guards the vocabulary.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusProcessing ComplaintStatus = "Processing"
	StatusResolved   ComplaintStatus = "Resolved"
)

func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "processing":
		return StatusProcessing, true
	case "resolved":
		return StatusResolved, true
	}
	return "", false
}

// PickupStatus is the five-value pickup workflow enum.
type PickupStatus string

const (
	PickupPending    PickupStatus = "Pending"
	PickupConfirmed  PickupStatus = "Confirmed"
	PickupInProgress PickupStatus = "In Progress"
	PickupCompleted  PickupStatus = "Completed"
	PickupCancelled  PickupStatus = "Cancelled"
)

func ParsePickupStatus(s string) (PickupStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return PickupPending, true
	case "confirmed":
		return PickupConfirmed, true
	case "in progress":
		return PickupInProgress, true
	case "completed":
		return PickupCompleted, true
	case "cancelled":
		return PickupCancelled, true
	}
	return "", false
}

// TerminalPickup reports whether a status ends the active queue lifecycle.
func TerminalPickup(s PickupStatus) bool {
	return s == PickupCompleted || s == PickupCancelled
}

type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ParseUrgency tolerates free text and falls back to Medium, matching the
// voice-extraction path where the model may answer "normal" or "urgent".
func ParseUrgency(s string) Urgency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return UrgencyLow
	case "high", "urgent", "critical":
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// Department is the canonical routing bucket. The stored department stays
// free text; CanonicalDepartment is applied wherever code needs to branch on
// it, so unknown values degrade to DepartmentOther instead of breaking.
type Department string

const (
	DepartmentRoad        Department = "Road"
	DepartmentWater       Department = "Water"
	DepartmentSanitation  Department = "Sanitation"
	DepartmentElectricity Department = "Electricity"
	DepartmentHealth      Department = "Health"
	DepartmentWomenChild  Department = "Women-Child"
	DepartmentGeneral     Department = "General"
	DepartmentOther       Department = "Other"
)

func CanonicalDepartment(s string) Department {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return DepartmentOther
	case strings.Contains(v, "road"):
		return DepartmentRoad
	case strings.Contains(v, "water"):
		return DepartmentWater
	case strings.Contains(v, "sanit"), strings.Contains(v, "garbage"), strings.Contains(v, "waste"):
		return DepartmentSanitation
	case strings.Contains(v, "electric"), strings.Contains(v, "power"):
		return DepartmentElectricity
	case strings.Contains(v, "health"), strings.Contains(v, "hospital"):
		return DepartmentHealth
	case strings.Contains(v, "women"), strings.Contains(v, "child"):
		return DepartmentWomenChild
	case strings.Contains(v, "general"), strings.Contains(v, "admin"):
		return DepartmentGeneral
	}
	return DepartmentOther
}

// Complaint is one citizen-filed issue. ID and Timestamp are immutable after
// creation; Status is the only field mutated in normal operation. Latitude
// and Longitude hold the raw client-submitted values, which may arrive
// swapped; normalization happens at read time only.
type Complaint struct {
	ID          string          `json:"id"`
	Token       string          `json:"token,omitempty"`
	Type        string          `json:"type"`
	Category    string          `json:"category,omitempty"`
	Name        string          `json:"name"`
	Phone       *string         `json:"phone,omitempty"`
	Location    string          `json:"location"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Department  string          `json:"department"`
	Urgency     Urgency         `json:"urgency"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`
	PhotoURL    *string         `json:"photoUrl,omitempty"`
	VoicePath   *string         `json:"voice_path,omitempty"`
	Transcript  *string         `json:"transcript,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PickupRequest is one scheduled recyclable-material collection.
type PickupRequest struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Phone               string       `json:"phone"`
	Email               string       `json:"email,omitempty"`
	Address             string       `json:"address"`
	Latitude            *float64     `json:"latitude"`
	Longitude           *float64     `json:"longitude"`
	Materials           []string     `json:"materials"`
	Quantity            string       `json:"quantity"`
	PreferredDate       string       `json:"preferredDate"`
	PreferredTime       string       `json:"preferredTime"`
	SpecialInstructions string       `json:"specialInstructions,omitempty"`
	Status              PickupStatus `json:"status"`
	AssignedDriver      *string      `json:"assignedDriver"`
	PickupDate          *string      `json:"pickupDate"`
	PickupTime          *string      `json:"pickupTime"`
	Notes               []PickupNote `json:"notes"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// PickupNote is one entry in the status-change history of a pickup request.
type PickupNote struct {
	Text      string       `json:"text"`
	Status    PickupStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// MaterialCount is one bucket of the material-distribution aggregate.
type MaterialCount struct {
	Material string `json:"material"`
	Count    int    `json:"count"`
}

// PickupStats is derived purely from stored rows at query time; there is no
// counter state to keep in sync.
type PickupStats struct {
	TotalRequests int `json:"totalRequests"`
	StatusCounts  struct {
		Pending    int `json:"pending"`
		Confirmed  int `json:"confirmed"`
		InProgress int `json:"inProgress"`
		Completed  int `json:"completed"`
		Cancelled  int `json:"cancelled"`
	} `json:"statusCounts"`
	TimeBased struct {
		Today    int `json:"today"`
		ThisWeek int `json:"thisWeek"`
	} `json:"timeBased"`
	MaterialDistribution []MaterialCount `json:"materialDistribution"`
}

// Session is one authenticated admin session, keyed by the cookie value.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
