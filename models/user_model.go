package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AdminUser is an operator account for the admin panel gate.
type AdminUser struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Password string             `bson:"password" json:"-" validate:"required,min=8"`
}
