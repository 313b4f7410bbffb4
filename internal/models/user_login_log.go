package models

import "time"

// UserLoginLog records login attempts, successful or not, for the
// backoffice audit view and the user's own security history.
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"` // 0 on failed attempts for unknown accounts
	Email      string    `gorm:"index;not null" json:"email"`
	Status     string    `gorm:"index;not null" json:"status"` // success / failed
	FailReason string    `gorm:"index" json:"fail_reason"`
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	RequestID  string    `gorm:"type:varchar(64);index" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
