package config

import (
	"sort"
	"strings"
)

type Cors struct {
	Origins []string `env:"CORS_ORIGINS" envSeparator:","`
	Methods string   `env:"CORS_METHODS" envDefault:"GET, POST, PUT, PATCH, DELETE"`
	Headers string   `env:"CORS_HEADERS" envDefault:"Content-Type, Authorization"`
}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

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

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range trimAll(c.Origins) {
		origins[strings.TrimRight(o, "/")] = nullValue{}
	}
	return origins
}

func (c Cors) GetAllowedMethods() string {
	return c.Methods
}

func (c Cors) GetAllowedHeaders() string {
	return c.Headers
}
