package models

import "time"

// RequestStatusHistory is the append-only ledger of status changes for a
// request. Ordered by changed_at ascending the rows form a chain:
// entry[i].new_status == entry[i+1].previous_status. The seed entry written
// at intake has a null previous_status and a null changed_by.
type RequestStatusHistory struct {
	HistoryID      int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	RequestID      int       `gorm:"column:request_id;index" json:"request_id"`
	PreviousStatus *string   `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      string    `gorm:"column:new_status" json:"new_status"`
	Notes          *string   `gorm:"column:notes" json:"notes,omitempty"`
	ChangedBy      *int      `gorm:"column:changed_by" json:"changed_by,omitempty"`
	ChangedAt      time.Time `gorm:"column:changed_at" json:"changed_at"`
}

// TableName specifies the table for RequestStatusHistory.
func (RequestStatusHistory) TableName() string {
	return "request_status_history"
}
