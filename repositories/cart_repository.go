// Package repositories implements the persistence collaborators on MongoDB.
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"haruki-store-api/models"
)

// cartDocument is the single keyed blob holding a cart's whole state. It is
// read once at rehydration and overwritten wholesale on every mutation.
type cartDocument struct {
	Key       string                `bson:"_id"`
	Items     []models.CartLineItem `bson:"items"`
	Promo     *models.Promotion     `bson:"promo,omitempty"`
	Shipping  *float64              `bson:"shipping,omitempty"`
	Wishlist  []string              `bson:"wishlist"`
	UpdatedAt time.Time             `bson:"updatedAt"`
}

// CartRepository stores cart blobs in the carts collection.
type CartRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewCartRepository(collection *mongo.Collection, logger *zap.Logger) *CartRepository {
	return &CartRepository{collection: collection, logger: logger}
}

// Load returns the stored cart state for key. A missing document returns
// (nil, nil); a document that fails to decode is treated the same way, so a
// corrupt blob falls back to the default empty cart instead of failing
// startup. The pointer shipping field distinguishes "never set" (default 20)
// from an explicit 0.
func (r *CartRepository) Load(ctx context.Context, key string) (*models.CartState, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if isDecodeError(err) {
			r.logger.Warn("stored cart blob is corrupt, discarding",
				zap.String("cartKey", key), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	state := models.CartState{
		Items:    doc.Items,
		Promo:    doc.Promo,
		Shipping: models.DefaultShipping,
		Wishlist: doc.Wishlist,
	}
	if doc.Shipping != nil {
		state.Shipping = *doc.Shipping
	}
	state.Normalize()
	return &state, nil
}

// Save overwrites the whole blob for key.
func (r *CartRepository) Save(ctx context.Context, key string, state *models.CartState) error {
	shipping := state.Shipping
	doc := cartDocument{
		Key:       key,
		Items:     state.Items,
		Promo:     state.Promo,
		Shipping:  &shipping,
		Wishlist:  state.Wishlist,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func isDecodeError(err error) bool {
	// bson decode failures surface as plain errors wrapping bsoncodec
	// messages; anything that is not a server/network error class counts.
	return !mongo.IsNetworkError(err) && !mongo.IsTimeout(err) &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) &&
		!isServerError(err)
}

func isServerError(err error) bool {
	var cmdErr mongo.CommandError
	var writeErr mongo.WriteException
	return errors.As(err, &cmdErr) || errors.As(err, &writeErr)
}
