package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is a club membership plan referenced by zero or more clients.
// Deleting a subscription does not cascade to the clients holding it.
type Subscription struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanType     string             `bson:"planType" json:"planType"`
	Cost         float64            `bson:"cost" json:"cost"`                 // Must be > 0
	DurationDays int                `bson:"durationDays" json:"durationDays"` // 1..365
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
