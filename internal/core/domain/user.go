package domain

// Seed groups created at bootstrap. Additional groups may be inserted later;
// none are ever deleted.
const (
	GroupAdmin    = "Admin"
	GroupEmployee = "Employee"
)

// User models an account held in the credential store. PasswordHash is a
// self-describing bcrypt digest and never leaves the process in responses.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Group is a flat authorization group. No hierarchy: a user either holds a
// membership in a group or does not.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SessionIdentity is the principal bound to a session container after a
// successful authentication.
type SessionIdentity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
