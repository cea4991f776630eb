package models

import "time"

// NotificationType is the canonical category string the upstream API accepts
type NotificationType string

const (
	NotificationTypePayment      NotificationType = "Payment"
	NotificationTypeEnrollment   NotificationType = "Enrollment"
	NotificationTypeCourseUpdate NotificationType = "CourseUpdate"
	NotificationTypeCrsApprv     NotificationType = "CrsApprv"
	NotificationTypeCrsRejct     NotificationType = "CrsRejct"
	NotificationTypeAccStatus    NotificationType = "AccStatus"
	NotificationTypeWithdraw     NotificationType = "WithdrawRequest"
	NotificationTypeSysAlert     NotificationType = "SysAlert"
	NotificationTypeGeneral      NotificationType = "General"
)

// Notification is a remote, API-owned record. The dashboard never
// originates the identifier.
type Notification struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"userId"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	SentAt    time.Time        `json:"sentAt"`
	CourseID  *uint            `json:"courseId,omitempty"`
	PaymentID *uint            `json:"paymentId,omitempty"`
}

// NotificationInput is the payload for creating or sending a notification
type NotificationInput struct {
	UserID    uint   `json:"userId"`
	Content   string `json:"content"`
	Type      string `json:"type"` // normalized to canonical before transmission
	CourseID  *uint  `json:"courseId,omitempty"`
	PaymentID *uint  `json:"paymentId,omitempty"`
}

// NotificationStats is the upstream per-user notification summary
type NotificationStats struct {
	Total       int64            `json:"total"`
	Unread      int64            `json:"unread"`
	CountByType map[string]int64 `json:"countByType"`
}
