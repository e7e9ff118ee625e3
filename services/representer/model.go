package representer

import "time"

// AccessCode is a single-use invite for the representer area. The master code
// from the environment never appears in this store.
type AccessCode struct {
	Code      string     `json:"code"`
	Used      bool       `json:"used"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Session is a logged-in representer, identified by the opaque uid in the
// session cookie.
type Session struct {
	UID       string    `json:"uid"`
	CreatedAt time.Time `json:"createdAt"`
}
