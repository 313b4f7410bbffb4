package models

import "time"

// AuthzAuditLog records every change made to roles and policies so
// permission escalations can be traced back to an operator.
type AuthzAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(64)" json:"operator_username"`
	TargetAdminID    *uint     `gorm:"index" json:"target_admin_id,omitempty"`
	TargetUsername   string    `gorm:"type:varchar(64)" json:"target_username,omitempty"`
	Action           string    `gorm:"type:varchar(64);index;not null" json:"action"`
	Role             string    `gorm:"type:varchar(128);index" json:"role,omitempty"`
	Object           string    `gorm:"type:varchar(255)" json:"object,omitempty"`
	Method           string    `gorm:"type:varchar(16)" json:"method,omitempty"`
	RequestID        string    `gorm:"type:varchar(64);index" json:"request_id,omitempty"`
	DetailJSON       JSON      `gorm:"serializer:json" json:"detail,omitempty"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
