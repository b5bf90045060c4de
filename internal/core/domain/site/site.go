package site

import "strings"

// Site is one storefront served by this process. Its Code is sent upstream in
// the site header so the commerce API scopes catalog, carts and orders to it.
type Site struct {
	Code    string   `yaml:"code" json:"code"`
	Name    string   `yaml:"name" json:"name"`
	Hosts   []string `yaml:"hosts" json:"hosts"`
	BaseURL string   `yaml:"base_url" json:"base_url"`
	Status  Status   `yaml:"status" json:"status"`
}

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
)

// CanAccess reports whether shoppers may browse the site.
func (s *Site) CanAccess() bool {
	return s.Status == "" || s.Status == StatusActive
}

// MatchesHost reports whether host (with or without port) belongs to the site.
func (s *Site) MatchesHost(host string) bool {
	host = strings.ToLower(stripPort(host))
	for _, h := range s.Hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// URL joins path onto the site's public origin.
func (s *Site) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(s.BaseURL, "/") + path
}

func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if i := strings.Index(host, "]"); i > 0 {
			return host[1:i]
		}
		return host
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		return host[:i]
	}
	return host
}
