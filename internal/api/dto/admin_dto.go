package dto

import "time"

// StaffCreateRequest payload for staff provisioning.
type StaffCreateRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Region    *string `json:"region,omitempty"`
}

// DashboardResponse is the staff dashboard summary.
type DashboardResponse struct {
	TotalVehicles  int64   `json:"total_vehicles"`
	ActiveStickers int64   `json:"active_stickers"`
	TotalRevenue   float64 `json:"total_revenue"`
	TodayRevenue   float64 `json:"today_revenue"`
	Region         *string `json:"region,omitempty"`
}

// PaymentResponse is the payment representation for reports.
type PaymentResponse struct {
	ID             string    `json:"id"`
	CitizenID      string    `json:"citizen_id"`
	StickerID      string    `json:"sticker_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	TransactionRef string    `json:"transaction_ref"`
	CreatedAt      time.Time `json:"created_at"`
}

// TaxConfigResponse is one rate-table row.
type TaxConfigResponse struct {
	ID                string    `json:"id"`
	VehicleCategory   string    `json:"vehicle_category"`
	EnginePowerMin    int       `json:"engine_power_min"`
	EnginePowerMax    int       `json:"engine_power_max"`
	BaseAmount        float64   `json:"base_amount"`
	MultiYearDiscount float64   `json:"multi_year_discount"`
	Status            string    `json:"status"`
	EffectiveDate     time.Time `json:"effective_date"`
}

// AuditEntryResponse is one audit trail row.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// InspectionCreateRequest payload for roadside controls.
type InspectionCreateRequest struct {
	VehicleRegistration string   `json:"vehicle_registration"`
	StatusAtControl     string   `json:"status_at_control"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

// InspectionResponse is one inspection record.
type InspectionResponse struct {
	ID                  string    `json:"id"`
	AgentID             string    `json:"agent_id"`
	VehicleRegistration string    `json:"vehicle_registration"`
	StatusAtControl     string    `json:"status_at_control"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}
