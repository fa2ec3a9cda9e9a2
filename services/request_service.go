package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"desa-portal-api/config"
	"desa-portal-api/models"
	"desa-portal-api/utils"
)

var (
	// ErrNotFound means the tracking number or request id does not exist.
	ErrNotFound = errors.New("request not found")
	// ErrInvalidStatus means the requested status is not one of the four
	// known values.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrTrackingCollision means tracking number generation kept hitting the
	// unique index. With six random characters per day this should never
	// happen outside of tests.
	ErrTrackingCollision = errors.New("could not allocate a unique tracking number")
)

// ValidationError lists the intake fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid intake data: %s", strings.Join(e.Fields, ", "))
}

// seedHistoryNotes is written on the first ledger entry of every request.
const seedHistoryNotes = "Pengajuan baru diterima"

const trackingMaxAttempts = 3

// RequestService owns the request lifecycle: intake, status transitions,
// and the read paths used by the public tracker and the admin panel.
type RequestService struct {
	db *gorm.DB

	// generateTracking is swapped out in tests to force collisions.
	generateTracking func() string
}

// NewRequestService instantiates the service. Passing nil uses the global
// database handle.
func NewRequestService(db *gorm.DB) *RequestService {
	if db == nil {
		db = config.DB
	}
	return &RequestService{
		db:               db,
		generateTracking: utils.GenerateTrackingNumber,
	}
}

// IntakeInput is a validated-at-the-edge citizen submission. Optional
// fields are empty strings; Documents pairs every requirement label with
// the file the applicant attached for it, if any.
type IntakeInput struct {
	ServiceID        string
	ServiceTitle     string
	ApplicantName    string
	ApplicantPhone   string
	ApplicantAddress string
	ApplicantNik     string
	Notes            string
	Documents        []models.RequestDocument
}

func (in *IntakeInput) validate() error {
	var fields []string
	if strings.TrimSpace(in.ServiceID) == "" {
		fields = append(fields, "serviceId")
	}
	if strings.TrimSpace(in.ServiceTitle) == "" {
		fields = append(fields, "serviceTitle")
	}
	if strings.TrimSpace(in.ApplicantName) == "" {
		fields = append(fields, "applicantName")
	}
	if strings.TrimSpace(in.ApplicantPhone) == "" {
		fields = append(fields, "applicantPhone")
	}
	if nik := strings.TrimSpace(in.ApplicantNik); nik != "" && !utils.ValidateNIK(nik) {
		fields = append(fields, "applicantNik")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// CreateRequest persists a new submission with status pending and its seed
// ledger entry in one transaction. A duplicate tracking number triggers a
// regeneration, bounded by trackingMaxAttempts.
func (s *RequestService) CreateRequest(in IntakeInput) (*models.ServiceRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < trackingMaxAttempts; attempt++ {
		now := time.Now()
		req := models.ServiceRequest{
			TrackingNumber:   s.generateTracking(),
			ServiceID:        strings.TrimSpace(in.ServiceID),
			ServiceTitle:     strings.TrimSpace(in.ServiceTitle),
			ApplicantName:    strings.TrimSpace(in.ApplicantName),
			ApplicantPhone:   strings.TrimSpace(in.ApplicantPhone),
			ApplicantAddress: optional(in.ApplicantAddress),
			ApplicantNik:     optional(in.ApplicantNik),
			Notes:            optional(in.Notes),
			Status:           models.StatusPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := req.SetDocuments(in.Documents); err != nil {
			return nil, err
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&req).Error; err != nil {
				return err
			}
			seedNotes := seedHistoryNotes
			history := models.RequestStatusHistory{
				RequestID:      req.RequestID,
				PreviousStatus: nil,
				NewStatus:      models.StatusPending,
				Notes:          &seedNotes,
				ChangedBy:      nil,
				ChangedAt:      now,
			}
			return tx.Create(&history).Error
		})
		if err == nil {
			return &req, nil
		}
		if isDuplicateKeyError(err) {
			continue
		}
		return nil, err
	}

	return nil, ErrTrackingCollision
}

// UpdateStatus appends a ledger entry and refreshes the cached summary on
// the request, all in one transaction. Any status may move to any other
// status, including re-asserting the current one; staff rely on being able
// to revert. completed_at is captured on the first terminal transition and
// never overwritten.
func (s *RequestService) UpdateStatus(requestID int, newStatus string, notes *string, changedBy *int) (*models.ServiceRequest, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var req models.ServiceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		previous := req.Status
		history := models.RequestStatusHistory{
			RequestID:      req.RequestID,
			PreviousStatus: &previous,
			NewStatus:      newStatus,
			Notes:          notes,
			ChangedBy:      changedBy,
			ChangedAt:      now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		}
		if notes != nil && strings.TrimSpace(*notes) != "" {
			updates["admin_notes"] = *notes
			req.AdminNotes = notes
		}
		if models.TerminalStatus(newStatus) && req.CompletedAt == nil {
			updates["completed_at"] = now
			req.CompletedAt = &now
		}
		if err := tx.Model(&models.ServiceRequest{}).
			Where("request_id = ?", req.RequestID).
			Updates(updates).Error; err != nil {
			return err
		}

		req.Status = newStatus
		req.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// TrackByNumber resolves a tracking number case-insensitively and returns
// the request with its ledger, newest change first.
func (s *RequestService) TrackByNumber(trackingNumber string) (*models.ServiceRequest, []models.RequestStatusHistory, error) {
	code := strings.ToUpper(strings.TrimSpace(trackingNumber))

	var req models.ServiceRequest
	if err := s.db.Where("UPPER(tracking_number) = ?", code).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	history, err := s.historyFor(req.RequestID)
	if err != nil {
		return nil, nil, err
	}
	return &req, history, nil
}

// GetRequest returns one request with its full ledger, newest change first.
func (s *RequestService) GetRequest(requestID int) (*models.ServiceRequest, []models.RequestStatusHistory, error) {
	var req models.ServiceRequest
	if err := s.db.Where("request_id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	history, err := s.historyFor(req.RequestID)
	if err != nil {
		return nil, nil, err
	}
	return &req, history, nil
}

func (s *RequestService) historyFor(requestID int) ([]models.RequestStatusHistory, error) {
	var history []models.RequestStatusHistory
	err := s.db.Where("request_id = ?", requestID).
		Order("changed_at DESC").
		Order("history_id DESC").
		Find(&history).Error
	return history, err
}

// ListOptions filters the admin request listing. Status "all" or "" means
// no status filter; Search matches applicant name, phone, and tracking
// number as a case-insensitive substring. Filters are conjunctive.
type ListOptions struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// Pagination describes one page of listing results.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListRequests returns a page of requests, newest-created first. Total and
// totalPages reflect the active filters so the pager matches what the
// admin sees.
func (s *RequestService) ListRequests(opts ListOptions) ([]models.ServiceRequest, Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := s.db.Model(&models.ServiceRequest{})
	if opts.Status != "" && opts.Status != "all" {
		q = q.Where("status = ?", opts.Status)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(applicant_name) LIKE ? OR LOWER(applicant_phone) LIKE ? OR LOWER(tracking_number) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var requests []models.ServiceRequest
	if err := q.Order("created_at DESC").
		Order("request_id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&requests).Error; err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return requests, pagination, nil
}

// RequestStats is the admin dashboard aggregate.
type RequestStats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Rejected   int64 `json:"rejected"`
	Total      int64 `json:"total"`
}

// Stats counts requests per status straight off the store, so the numbers
// always agree with what ListRequests would return.
func (s *RequestService) Stats() (RequestStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return RequestStats{}, err
	}

	var stats RequestStats
	for _, row := range rows {
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.Count
		case models.StatusProcessing:
			stats.Processing = row.Count
		case models.StatusCompleted:
			stats.Completed = row.Count
		case models.StatusRejected:
			stats.Rejected = row.Count
		}
		stats.Total += row.Count
	}
	return stats, nil
}

// DeleteRequest removes a request and its ledger. The deleted row is
// returned so the caller can clean up stored upload files.
func (s *RequestService) DeleteRequest(requestID int) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		// Explicit ledger delete keeps the cascade working on stores that
		// do not enforce the foreign key.
		if err := tx.Where("request_id = ?", req.RequestID).
			Delete(&models.RequestStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") // mysql 1062
}
