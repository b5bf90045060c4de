package sites

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	config "github.com/avatarctic/storefront/configs"
	"github.com/avatarctic/storefront/internal/core/domain/site"
)

type file struct {
	Default string       `yaml:"default"`
	Sites   []*site.Site `yaml:"sites"`
}

// Registry is an immutable host-to-site table built at startup.
type Registry struct {
	sites  []*site.Site
	byCode map[string]*site.Site
	def    *site.Site
}

// Load builds the registry from cfg. Without SITES_FILE the registry holds a
// single site made from SITE_CODE/SITE_NAME and the server base URL.
func Load(cfg *config.SitesConfig, baseURL string) (*Registry, error) {
	if cfg.File == "" {
		return New([]*site.Site{{
			Code:    cfg.DefaultCode,
			Name:    cfg.DefaultName,
			BaseURL: baseURL,
			Status:  site.StatusActive,
		}}, cfg.DefaultCode)
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}
	def := f.Default
	if def == "" {
		def = cfg.DefaultCode
	}
	for _, s := range f.Sites {
		if s.BaseURL == "" {
			s.BaseURL = baseURL
		}
	}
	return New(f.Sites, def)
}

// New validates sites and builds the registry.
func New(sites []*site.Site, defaultCode string) (*Registry, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("at least one site is required")
	}
	r := &Registry{byCode: make(map[string]*site.Site, len(sites))}
	for _, s := range sites {
		if s == nil || s.Code == "" {
			return nil, fmt.Errorf("site code is required")
		}
		if _, dup := r.byCode[s.Code]; dup {
			return nil, fmt.Errorf("duplicate site code %q", s.Code)
		}
		r.byCode[s.Code] = s
		r.sites = append(r.sites, s)
	}
	def, ok := r.byCode[defaultCode]
	if !ok {
		return nil, fmt.Errorf("default site %q is not defined", defaultCode)
	}
	r.def = def
	return r, nil
}

func (r *Registry) Resolve(host string) *site.Site {
	for _, s := range r.sites {
		if s.MatchesHost(host) {
			return s
		}
	}
	return r.def
}

func (r *Registry) Lookup(code string) (*site.Site, bool) {
	s, ok := r.byCode[code]
	return s, ok
}

func (r *Registry) Sites() []*site.Site {
	out := make([]*site.Site, len(r.sites))
	copy(out, r.sites)
	return out
}
