package repository

import "time"

// MoveListFilter filter for move list queries
type MoveListFilter struct {
	Page            int
	PageSize        int
	UserID          uint
	Status          string
	MoveNo          string
	AssignedMoverID uint
	MoveDateFrom    *time.Time
	MoveDateTo      *time.Time
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// QuoteListFilter filter for quote list queries
type QuoteListFilter struct {
	Page     int
	PageSize int
	MoveID   uint
	Status   string
}

// TrackingEventListFilter filter for tracking event queries
type TrackingEventListFilter struct {
	Page      int
	PageSize  int
	MoveID    uint
	EventType string
}

// MoverListFilter filter for mover directory queries
type MoverListFilter struct {
	Page         int
	PageSize     int
	Keyword      string
	VehicleClass string
	ActiveOnly   bool
}

// PerformanceListFilter filter for performance record queries
type PerformanceListFilter struct {
	Page        int
	PageSize    int
	MoveID      uint
	OnTime      *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filter for user list queries
type UserListFilter struct {
	Page          int
	PageSize      int
	Keyword       string
	Status        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	LastLoginFrom *time.Time
	LastLoginTo   *time.Time
}

// AuthzAuditLogListFilter filter for authz audit log queries
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// UserLoginLogListFilter filter for login log queries
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
