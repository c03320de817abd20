package models

import "time"

// Notification is idempotent on (RecipientID, EventKey); the event key is
// derived from the event type and target id.
type Notification struct {
	ID          uint   `gorm:"primaryKey"`
	RecipientID uint   `gorm:"not null;index:idx_notification_event,unique"`
	EventKey    string `gorm:"not null;index:idx_notification_event,unique"`
	Type        string `gorm:"not null"`
	Title       string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type Ticket struct {
	ID           uint         `gorm:"primaryKey"`
	Category     string       `gorm:"not null;index"`
	Priority     string       `gorm:"not null"`
	AssignedTeam string       `gorm:"not null"`
	Status       TicketStatus `gorm:"not null;default:'open'"`
	Subject      string
	Body         string
	CreatedBy    uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ChangeRequestType string

const (
	ChangeRequestReschedule ChangeRequestType = "reschedule"
	ChangeRequestCancel     ChangeRequestType = "cancel"
)

type ChangeRequestStatus string

const (
	ChangeRequestPending  ChangeRequestStatus = "pending"
	ChangeRequestResolved ChangeRequestStatus = "resolved"
)

// ScheduleChangeRequest never mutates the schedule itself; a coordinator
// acts on it through the linked ticket.
type ScheduleChangeRequest struct {
	ID            uint                `gorm:"primaryKey"`
	TimeslotID    uint                `gorm:"not null;index"`
	RequestedBy   uint                `gorm:"not null"`
	RequestType   ChangeRequestType   `gorm:"not null"`
	Reason        string              `gorm:"not null"`
	RequestedDate *time.Time
	RequestedTime string
	Status        ChangeRequestStatus `gorm:"not null;default:'pending'"`
	TicketID      uint                `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
