package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTrustLevel is assumed for sources that have no explicit trust level.
const DefaultTrustLevel = 0.5

// Source is a citation or document backing one or more Relations.
type Source struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Authors    string    `json:"authors,omitempty"`
	Year       int       `json:"year,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	URL        string    `json:"url,omitempty"`
	TrustLevel *float64  `json:"trust_level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Trust returns the source's trust level, falling back to DefaultTrustLevel
// when none was recorded.
func (s *Source) Trust() float64 {
	if s == nil || s.TrustLevel == nil {
		return DefaultTrustLevel
	}
	return *s.TrustLevel
}
