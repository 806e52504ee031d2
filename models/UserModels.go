package models

import "time"

// User is an account that can log into the system. Password holds a bcrypt
// hash, never plaintext. AgentID is non-zero only for freightAgent users.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	RoleName  string    `json:"role_name"`
	AgentID   int       `json:"agent_id,omitempty"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Agent is a freight-forwarding company that submits quotes.
type Agent struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	PhoneNo       string    `json:"phone_no"`
	ServiceScope  string    `json:"service_scope"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Session is one logged-in device. The access token itself is the session
// key; the refresh token lives in the same row so each device refreshes
// independently.
type Session struct {
	UserID                int       `json:"user_id"`
	SessionID             string    `json:"session_id"`
	HostName              string    `json:"host_name"`
	IPAddress             string    `json:"ip_address"`
	Timestamp             time.Time `json:"timestp"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
	ExpiresIn    int    `json:"expires_in"`
}

// AddAgentRequest creates a freight agent company plus its login user.
type AddAgentRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" binding:"required,email"`
	PhoneNo       string `json:"phone_no"`
	ServiceScope  string `json:"service_scope"`
	Password      string `json:"password" binding:"required,min=6"`
}

// AddUserRequest creates a main user or coordinator account.
type AddUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	RoleName  string `json:"role_name" binding:"required"`
}

// EmailData carries the variables substituted into email templates.
type EmailData struct {
	UserName     string
	AgentName    string
	Email        string
	Password     string
	Role         string
	OrderNumber  string
	CancelReason string
	LoginURL     string
	ResetURL     string
	SupportEmail string
}
