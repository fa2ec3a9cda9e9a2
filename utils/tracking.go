package utils

import (
	"crypto/rand"
	"math/big"
	"os"
	"strings"
	"time"
)

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// trackingSuffixLen is the number of random characters appended to the date
// component. 36^6 combinations per day make collisions negligible at village
// submission volumes; inserts still retry on a unique-constraint hit.
const trackingSuffixLen = 6

// TrackingPrefix returns the site prefix for tracking numbers.
func TrackingPrefix() string {
	if p := strings.ToUpper(strings.TrimSpace(os.Getenv("TRACKING_PREFIX"))); p != "" {
		return p
	}
	return "TGK"
}

// GenerateTrackingNumber builds a public tracking number of the form
// PREFIX + YYMMDD + 6 random uppercase alphanumerics, e.g. TGK251211AB12CD.
func GenerateTrackingNumber() string {
	var b strings.Builder
	b.WriteString(TrackingPrefix())
	b.WriteString(time.Now().Format("060102"))
	for i := 0; i < trackingSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(trackingAlphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a clock-derived index rather than crash intake.
			b.WriteByte(trackingAlphabet[time.Now().UnixNano()%int64(len(trackingAlphabet))])
			continue
		}
		b.WriteByte(trackingAlphabet[n.Int64()])
	}
	return b.String()
}
