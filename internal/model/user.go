package model

// User roles as stored in users.type.  The original application knows
// exactly two: administrators can see every cart in the system, customers
// only their own.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The
// PasswordHash field holds a bcrypt digest and must never appear in any
// serialized response; handler view types omit it unconditionally rather
// than relying on callers to strip it.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name, 3 to 25 characters.
//  PasswordHash – bcrypt hashed password, never the raw credential.
//  Type         – role tag, either "admin" or "customer".
type User struct {
	ID           uint64 // users.id
	Username     string // users.username
	PasswordHash string // users.password_hash
	Type         string // users.type
}

// Validate enforces the username length bound and the closed role set.
func (u *User) Validate() error {
	if n := len(u.Username); n < 3 || n > 25 {
		return invalid("username", "must be 3 to 25 characters long")
	}
	if u.PasswordHash == "" {
		return invalid("password_hash", "must be completed")
	}
	if u.Type != RoleAdmin && u.Type != RoleCustomer {
		return invalid("type", "must be admin or customer")
	}
	return nil
}
