package model

import "time"

// User roles. Admins manage locations, floors and desks and can see
// every booking; employees can browse and book.
const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// User mirrors the `users` table. The password hash never leaves the
// repository layer.
//
// Fields:
//  ID        – primary key identifier.
//  Email     – unique login email, stored lower-case.
//  FullName  – optional display name.
//  Role      – EMPLOYEE or ADMIN.
//  IsActive  – soft-disable flag for the account.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type User struct {
	ID        uint64    `json:"id"`         // users.id
	Email     string    `json:"email"`      // users.email
	FullName  *string   `json:"full_name"`  // users.full_name (nullable)
	Role      string    `json:"role"`       // users.role
	IsActive  bool      `json:"is_active"`  // users.is_active
	CreatedAt time.Time `json:"created_at"` // users.created_at
	UpdatedAt time.Time `json:"updated_at"` // users.updated_at
}
