package dto

// CitizenRegisterRequest payload for citizen signup.
type CitizenRegisterRequest struct {
	Phone      string  `json:"phone"`
	Password   string  `json:"password"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      *string `json:"email,omitempty"`
	NationalID *string `json:"national_id,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// CitizenLoginRequest payload for citizen login.
type CitizenLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// StaffLoginRequest payload for staff login.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the standard response for authentication endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        any    `json:"user"`
}

// CitizenSummary is the citizen shape embedded in responses.
type CitizenSummary struct {
	ID            string `json:"id"`
	Phone         string `json:"phone"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// StaffSummary is the staff shape embedded in responses.
type StaffSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Region    *string `json:"region,omitempty"`
}
