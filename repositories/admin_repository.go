package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"haruki-store-api/models"
)

// ErrAdminNotFound is returned when no operator account matches.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository reads operator accounts for the session gate.
type AdminRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewAdminRepository(collection *mongo.Collection, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{collection: collection, logger: logger}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, unavailable("fetching admin", err)
	}
	return &admin, nil
}
