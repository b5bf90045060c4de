package promotion

import "time"

type Promotion struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Code        string     `json:"code,omitempty"`
	BannerURL   string     `json:"banner_url"`
	LinkURL     string     `json:"link_url"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// IsActive reports whether the promotion runs at the given instant.
func (p *Promotion) IsActive(at time.Time) bool {
	if at.Before(p.StartsAt) {
		return false
	}
	return p.EndsAt == nil || at.Before(*p.EndsAt)
}
