package config

import "strings"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityOwner                       // Access token with owner role required
)

// EndpointSecurityConfig maps "METHOD /path-template" to the required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Session and auth - Public
	"POST /api/v1/sessions":      SecurityPublic,
	"POST /api/v1/auth/login":    SecurityPublic,
	"POST /api/v1/auth/register": SecurityPublic,
	"POST /api/v1/auth/logout":   SecurityPublic,

	// Browsing and cart - Public
	"GET /api/v1/catalog":            SecurityPublic,
	"POST /api/v1/catalog/reload":    SecurityPublic,
	"GET /api/v1/cart":               SecurityPublic,
	"POST /api/v1/cart/items":        SecurityPublic,
	"PUT /api/v1/cart/items/{id}":    SecurityPublic,
	"DELETE /api/v1/cart/items/{id}": SecurityPublic,
	"DELETE /api/v1/cart":            SecurityPublic,
	"POST /api/v1/checkout":          SecurityPublic,
	"PUT /api/v1/locale":             SecurityPublic,
	"GET /api/v1/strings":            SecurityPublic,
	"GET /api/v1/events":             SecurityPublic,

	// Account - Access Protected
	"GET /api/v1/orders":      SecurityAccess,
	"GET /api/v1/orders/{id}": SecurityAccess,
	"GET /api/v1/profile":     SecurityAccess,
	"PUT /api/v1/profile":     SecurityAccess,

	// Fulfillment - Owner Protected
	"PUT /api/v1/orders/{id}/status": SecurityOwner,

	// Listings - Owner Protected
	"GET /api/v1/listings":         SecurityOwner,
	"POST /api/v1/listings":        SecurityOwner,
	"PUT /api/v1/listings/{id}":    SecurityOwner,
	"DELETE /api/v1/listings/{id}": SecurityOwner,
}

// GetSecurityLevel returns the security level for a method and route template
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[strings.ToUpper(method)+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityOwner
}
