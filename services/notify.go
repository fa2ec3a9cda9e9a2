package services

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"

	"desa-portal-api/config"
	"desa-portal-api/models"
)

// NotifyNewRequest emails the staff inbox about a fresh submission. It is
// best-effort: intake has already committed by the time this runs, so
// failures are only logged. Call it from a goroutine.
func NotifyNewRequest(req *models.ServiceRequest) {
	recipients := notifyRecipients()
	if len(recipients) == 0 || !config.MailConfigured() {
		return
	}

	subject := fmt.Sprintf("Pengajuan baru %s - %s", req.TrackingNumber, req.ServiceTitle)
	body := fmt.Sprintf(
		"<p>Pengajuan layanan baru telah diterima.</p>"+
			"<ul>"+
			"<li>Nomor pelacakan: <b>%s</b></li>"+
			"<li>Layanan: %s</li>"+
			"<li>Pemohon: %s (%s)</li>"+
			"<li>Dokumen terlampir: %d</li>"+
			"</ul>",
		html.EscapeString(req.TrackingNumber),
		html.EscapeString(req.ServiceTitle),
		html.EscapeString(req.ApplicantName),
		html.EscapeString(req.ApplicantPhone),
		len(req.DocumentList()),
	)

	if err := config.SendMail(recipients, subject, body); err != nil {
		log.Printf("Failed to send intake notification for %s: %v", req.TrackingNumber, err)
	}
}

func notifyRecipients() []string {
	raw := os.Getenv("ADMIN_NOTIFY_EMAIL")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
