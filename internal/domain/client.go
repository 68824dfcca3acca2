package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client represents a club member. Username and PasswordHash duplicate the
// paired Credential (denormalized for fast self-lookup); keeping the two in
// sync is the job of the identity reconciler in the service layer.
type Client struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone" json:"phone"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Every client must hold a subscription.
	SubscriptionID primitive.ObjectID `bson:"subscriptionId" json:"subscriptionId"`

	// A client may train without a personal trainer.
	// Use pointer + omitempty as the assignment is optional.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}
