package waitlist

import (
	"strings"
	"time"
)

// Entry is one signup, keyed by normalized email so the same address can
// never join twice.
type Entry struct {
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
