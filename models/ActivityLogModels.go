package models

import "time"

// ActivityLog records auth and lifecycle mutations for audit. Persisted
// through GORM (see storage.InitGormDB for migration).
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UserName     string    `gorm:"column:user_name" json:"user_name"`
	HostName     string    `gorm:"column:host_name" json:"host_name"`
	IPAddress    string    `gorm:"column:ip_address" json:"ip_address"`
	EventContext string    `gorm:"column:event_context;not null" json:"event_context"`
	EventName    string    `gorm:"column:event_name;not null" json:"event_name"`
	Description  string    `gorm:"column:description" json:"description"`
	OrderNumber  string    `gorm:"column:order_number;index" json:"order_number,omitempty"`
}

// TableName keeps the historical table name.
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// EmailTemplate is an editable template for outbound mail, keyed by type
// ("welcome_user", "welcome_agent", "order_cancelled", "password_reset").
type EmailTemplate struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	TemplateType string    `gorm:"column:template_type;not null;index" json:"template_type"`
	Subject      string    `gorm:"column:subject;not null" json:"subject"`
	Body         string    `gorm:"column:body;not null" json:"body"`
	IsDefault    bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}
