package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between login identities
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "ADMIN"
	RoleClient  Role = "CLIENT"
	RoleTrainer Role = "TRAINER"
)

// Credential represents a login identity (username, password hash, role),
// independent of any domain profile. It is created exactly once per human
// identity, always together with a Client or Trainer profile (or seeded for
// the admin), and its username must never collide with any profile username.
type Credential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique across credentials, clients and trainers
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Helper methods (Optional but can be useful)
func (c *Credential) IsAdmin() bool {
	return c.Role == RoleAdmin
}
