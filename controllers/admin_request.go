package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"desa-portal-api/services"
	"desa-portal-api/utils"
)

// ListRequests returns a filtered, paginated page of requests for the
// admin panel.
func ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	svc := services.NewRequestService(nil)
	requests, pagination, err := svc.ListRequests(services.ListOptions{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("List requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	out := make([]gin.H, 0, len(requests))
	for i := range requests {
		out = append(out, requestPayload(&requests[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":   out,
		"pagination": pagination,
	})
}

// GetStats returns the dashboard counts per status.
func GetStats(c *gin.Context) {
	svc := services.NewRequestService(nil)
	stats, err := svc.Stats()
	if err != nil {
		log.Printf("Request stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRequest returns one request with its full status history.
func GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
		return
	}

	svc := services.NewRequestService(nil)
	req, history, err := svc.GetRequest(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
			return
		}
		log.Printf("Get request %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": requestPayload(req),
		"history": history,
	})
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// UpdateRequestStatus transitions a request and appends to its ledger.
func UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status tidak valid"})
		return
	}

	var changedBy *int
	if userID, exists := c.Get("userID"); exists {
		if uid, ok := userID.(int); ok {
			changedBy = &uid
		}
	}

	svc := services.NewRequestService(nil)
	req, err := svc.UpdateStatus(id, body.Status, body.Notes, changedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status tidak valid"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
		default:
			log.Printf("Update status %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status berhasil diperbarui",
		"request": requestPayload(req),
	})
}

// DeleteRequest removes a request, its history, and its stored files.
func DeleteRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
		return
	}

	svc := services.NewRequestService(nil)
	req, err := svc.DeleteRequest(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
			return
		}
		log.Printf("Delete request %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		return
	}

	// File cleanup is best-effort; the row is already gone.
	for _, doc := range req.DocumentList() {
		if doc.StoredPath == "" {
			continue
		}
		if err := os.Remove(filepath.Join(utils.UploadPath(), doc.StoredPath)); err != nil && !os.IsNotExist(err) {
			log.Printf("Delete request %d: remove %s: %v", id, doc.StoredPath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pengajuan berhasil dihapus"})
}
