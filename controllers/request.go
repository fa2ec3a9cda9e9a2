package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"desa-portal-api/models"
	"desa-portal-api/services"
	"desa-portal-api/utils"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB per file

// allowedUploadTypes mirrors what the frontend upload widget accepts.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// CreateRequest handles a citizen submission: multipart form fields plus
// 0..N "documents" file parts paired positionally with requirementLabels.
func CreateRequest(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form tidak valid"})
		return
	}
	files := form.File["documents"]

	// Reject bad files before anything is persisted.
	for _, file := range files {
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ukuran file melebihi batas 5MB"})
			return
		}
		if !allowedUploadTypes[uploadContentType(file)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipe file tidak didukung. Gunakan JPG, PNG, GIF, WEBP, atau PDF."})
			return
		}
	}

	labels, err := parseRequirementLabels(c.PostForm("requirementLabels"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requirementLabels harus berupa array JSON"})
		return
	}

	// Store the files first; a failed document write aborts the whole
	// intake so a request can never reference a missing file.
	if err := utils.EnsureUploadDir(); err != nil {
		log.Printf("Create request: upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	saved := make([]string, 0, len(files))
	cleanup := func() {
		for _, path := range saved {
			os.Remove(path)
		}
	}

	documents := make([]models.RequestDocument, 0, len(labels))
	for i, label := range labels {
		doc := models.RequestDocument{Label: label}
		if i < len(files) {
			file := files[i]
			storedName := utils.StoredFilename(file.Filename)
			fullPath := filepath.Join(utils.UploadPath(), storedName)
			if err := c.SaveUploadedFile(file, fullPath); err != nil {
				cleanup()
				log.Printf("Create request: save upload: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan file"})
				return
			}
			saved = append(saved, fullPath)
			doc.OriginalFilename = file.Filename
			doc.StoredPath = storedName
		}
		documents = append(documents, doc)
	}

	svc := services.NewRequestService(nil)
	req, err := svc.CreateRequest(services.IntakeInput{
		ServiceID:        c.PostForm("serviceId"),
		ServiceTitle:     c.PostForm("serviceTitle"),
		ApplicantName:    c.PostForm("applicantName"),
		ApplicantPhone:   c.PostForm("applicantPhone"),
		ApplicantAddress: c.PostForm("applicantAddress"),
		ApplicantNik:     c.PostForm("applicantNik"),
		Notes:            c.PostForm("notes"),
		Documents:        documents,
	})
	if err != nil {
		cleanup()
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Data tidak lengkap",
				"required": verr.Fields,
			})
		case errors.Is(err, services.ErrTrackingCollision):
			c.JSON(http.StatusConflict, gin.H{"error": "Gagal membuat nomor pelacakan, silakan coba lagi"})
		default:
			log.Printf("Create request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		}
		return
	}

	go services.NotifyNewRequest(req)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Pengajuan berhasil dikirim",
		"trackingNumber": req.TrackingNumber,
		"request":        requestPayload(req),
	})
}

// TrackRequest resolves a tracking number for the public status page. The
// payload excludes internal ids and staff notes.
func TrackRequest(c *gin.Context) {
	svc := services.NewRequestService(nil)
	req, history, err := svc.TrackByNumber(c.Param("trackingNumber"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
			return
		}
		log.Printf("Track request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": gin.H{
			"tracking_number": req.TrackingNumber,
			"service_title":   req.ServiceTitle,
			"applicant_name":  req.ApplicantName,
			"status":          req.Status,
			"created_at":      req.CreatedAt,
			"updated_at":      req.UpdatedAt,
			"completed_at":    req.CompletedAt,
		},
		"history": history,
	})
}

func parseRequirementLabels(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func uploadContentType(file *multipart.FileHeader) string {
	ct := file.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// requestPayload is the full request projection used by the intake
// response and the admin panel.
func requestPayload(req *models.ServiceRequest) gin.H {
	return gin.H{
		"request_id":          req.RequestID,
		"tracking_number":     req.TrackingNumber,
		"service_id":          req.ServiceID,
		"service_title":       req.ServiceTitle,
		"applicant_name":      req.ApplicantName,
		"applicant_phone":     req.ApplicantPhone,
		"applicant_address":   req.ApplicantAddress,
		"applicant_nik":       req.ApplicantNik,
		"notes":               req.Notes,
		"documents":           req.DocumentList(),
		"completed_documents": req.CompletedDocuments,
		"status":              req.Status,
		"admin_notes":         req.AdminNotes,
		"created_at":          req.CreatedAt,
		"updated_at":          req.UpdatedAt,
		"completed_at":        req.CompletedAt,
	}
}
