package models

import (
	"encoding/json"
	"time"
)

// Request status values. Any status may transition to any other status;
// staff workflows rely on being able to revert a request.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// ValidStatus reports whether s is one of the four request statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// TerminalStatus reports whether s freezes completed_at.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusRejected
}

// RequestDocument describes one requirement slot of a submission. The label
// is always present; the file fields stay empty when the applicant
// acknowledged the requirement without attaching a file.
type RequestDocument struct {
	Label            string `json:"label"`
	OriginalFilename string `json:"original_filename,omitempty"`
	StoredPath       string `json:"stored_path,omitempty"`
}

// ServiceRequest is a citizen submission for an administrative service.
// service_id/service_title are snapshotted from the catalog at submission
// time and never re-derived, so later catalog edits cannot rewrite history.
type ServiceRequest struct {
	RequestID          int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	TrackingNumber     string     `gorm:"column:tracking_number;uniqueIndex;size:32" json:"tracking_number"`
	ServiceID          string     `gorm:"column:service_id" json:"service_id"`
	ServiceTitle       string     `gorm:"column:service_title" json:"service_title"`
	ApplicantName      string     `gorm:"column:applicant_name" json:"applicant_name"`
	ApplicantPhone     string     `gorm:"column:applicant_phone" json:"applicant_phone"`
	ApplicantAddress   *string    `gorm:"column:applicant_address" json:"applicant_address,omitempty"`
	ApplicantNik       *string    `gorm:"column:applicant_nik" json:"applicant_nik,omitempty"`
	Notes              *string    `gorm:"column:notes" json:"notes,omitempty"`
	Documents          string     `gorm:"column:documents;type:text" json:"-"`
	CompletedDocuments *string    `gorm:"column:completed_documents;type:text" json:"completed_documents,omitempty"`
	Status             string     `gorm:"column:status;index;default:pending" json:"status"`
	AdminNotes         *string    `gorm:"column:admin_notes" json:"admin_notes,omitempty"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at" json:"updated_at"`
	CompletedAt        *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

// TableName overrides the table for ServiceRequest.
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// SetDocuments serializes the document descriptors into the JSON column.
func (r *ServiceRequest) SetDocuments(docs []RequestDocument) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	r.Documents = string(raw)
	return nil
}

// DocumentList parses the JSON documents column. A missing or corrupt
// column yields an empty slice rather than an error; the ledger, not the
// document list, is the source of truth for request state.
func (r *ServiceRequest) DocumentList() []RequestDocument {
	if r.Documents == "" {
		return []RequestDocument{}
	}
	var docs []RequestDocument
	if err := json.Unmarshal([]byte(r.Documents), &docs); err != nil {
		return []RequestDocument{}
	}
	return docs
}
