package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is the catalog record read for price lookup. This service never
// mutates products; the admin order builder reads them as a snapshot.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   float64            `bson:"basePrice" json:"basePrice" validate:"gte=0"`
	Currency    string             `bson:"currency" json:"currency"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
}
