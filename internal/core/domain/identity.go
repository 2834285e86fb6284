package domain

import "time"

// Role is the coarse caller type carried by every verified token.
type Role string

const (
	RoleInternal Role = "internal"
	RoleClient   Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleInternal || r == RoleClient
}

// UnknownSubject is recorded when a request carried no verified identity.
const UnknownSubject = "unknown"

// Identity is the verified caller of a single request. It is only built by a
// token verifier after the credential checked out, and is never mutated.
type Identity struct {
	SubjectID string    `json:"subject_id"`
	Label     string    `json:"label,omitempty"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AppConfig is the per-client application configuration looked up at client
// login. A client without one is not allowed in.
type AppConfig struct {
	SubjectID string            `json:"subject_id" bson:"_id"`
	AppName   string            `json:"app_name" bson:"app_name"`
	Settings  map[string]string `json:"settings,omitempty" bson:"settings,omitempty"`
}
