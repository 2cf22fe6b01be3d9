package models

// Roles a session can carry.
const (
	RoleHomeowner = "homeowner"
	RoleProvider  = "provider"
	RoleAdmin     = "admin"
)

// User is the identity object the auth backend returns.
type User struct {
	UserID    string `json:"userid"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	MobNumber string `json:"mobnumber,omitempty"`
	Role      string `json:"role"`
	AdminID   string `json:"adminId,omitempty"`
}

// Credential kinds for the durable auth record.
const (
	CredentialUser  = "user"
	CredentialAdmin = "admin"
)

// AuthRecord is the single durable credential slot for a client scope.
// Exactly one credential (user or admin) is representable at a time.
type AuthRecord struct {
	Kind  string `json:"kind"` // "user" or "admin"
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the resolved authenticated identity.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
	Kind  string `json:"kind"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}

// IsAuthenticated reports whether a session is present.
func (s *Session) IsAuthenticated() bool {
	return s != nil
}
