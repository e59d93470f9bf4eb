package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/orders"
)

// CatalogRepository reads the product snapshot. This service never writes to
// the products collection.
type CatalogRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewCatalogRepository(collection *mongo.Collection, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{collection: collection, logger: logger}
}

// ProductByID resolves one product for price lookup.
func (r *CatalogRepository) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, orders.ErrProductNotFound
	}

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, orders.ErrProductNotFound
		}
		return nil, unavailable("fetching product", err)
	}
	return &product, nil
}

// ListProducts returns the catalog snapshot, newest entries last.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, unavailable("listing products", err)
	}
	defer cursor.Close(ctx)

	results := []models.Product{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, unavailable("decoding products", err)
	}
	return results, nil
}
