package config

import (
	"sort"
	"strings"
)

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type AllowedOrigins map[string]struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins defaults to "*" when ALLOWED_ORIGINS is unset, as the dashboard
// is called from a browser holding a bearer credential rather than cookies.
func (c Config) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}
	if len(origins) == 0 {
		origins["*"] = struct{}{}
	}
	return origins
}

func (Config) GetAllowedMethods() string {
	return "GET, POST, OPTIONS"
}

func (Config) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
