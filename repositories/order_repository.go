package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/orders"
)

// ErrOrderNotFound is returned when an order id matches nothing.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists order headers and their items in two collections.
// The two inserts are deliberately not wrapped in a transaction: the composer
// owns the combined failure modes and the orphaned-header recovery path.
type OrderRepository struct {
	ordersColl *mongo.Collection
	itemsColl  *mongo.Collection
	logger     *zap.Logger
}

func NewOrderRepository(ordersColl, itemsColl *mongo.Collection, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{ordersColl: ordersColl, itemsColl: itemsColl, logger: logger}
}

// InsertOrder writes the order header and returns its generated id.
func (r *OrderRepository) InsertOrder(ctx context.Context, order *models.OrderRecord) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.ordersColl.InsertOne(ctx, order); err != nil {
		return primitive.NilObjectID, unavailable("inserting order header", err)
	}
	return order.ID, nil
}

// InsertOrderItems writes the line rows referencing orderID.
func (r *OrderRepository) InsertOrderItems(ctx context.Context, orderID primitive.ObjectID, items []models.OrderItemRecord) error {
	docs := make([]interface{}, len(items))
	for i, item := range items {
		item.OrderID = orderID
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		docs[i] = item
	}
	if _, err := r.itemsColl.InsertMany(ctx, docs); err != nil {
		return unavailable("inserting order items", err)
	}
	return nil
}

// UpdateStatus sets the status for one order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error {
	result, err := r.ordersColl.UpdateByID(ctx, orderID, bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": primitive.NewDateTimeFromTime(nowUTC()),
		},
	})
	if err != nil {
		return unavailable("updating order status", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// FindOrders lists orders newest first, optionally filtered by status and a
// case-insensitive search over code and customer identity fields.
func (r *OrderRepository) FindOrders(ctx context.Context, status models.OrderStatus, search string) ([]models.OrderRecord, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexQuote(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"orderCode": pattern},
			bson.M{"customerName": pattern},
			bson.M{"customerEmail": pattern},
			bson.M{"customerPhone": pattern},
		}
	}

	cursor, err := r.ordersColl.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, unavailable("listing orders", err)
	}
	defer cursor.Close(ctx)

	results := []models.OrderRecord{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, unavailable("decoding orders", err)
	}
	return results, nil
}

// FindOrderItems returns the line rows of one order.
func (r *OrderRepository) FindOrderItems(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderItemRecord, error) {
	cursor, err := r.itemsColl.Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return nil, unavailable("listing order items", err)
	}
	defer cursor.Close(ctx)

	results := []models.OrderItemRecord{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, unavailable("decoding order items", err)
	}
	return results, nil
}

// DeleteOrder removes the items first and the header second, so an
// interrupted delete cannot produce an orphaned header-less item set.
func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID primitive.ObjectID) error {
	if _, err := r.itemsColl.DeleteMany(ctx, bson.M{"orderId": orderID}); err != nil {
		return unavailable("deleting order items", err)
	}
	result, err := r.ordersColl.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return unavailable("deleting order", err)
	}
	if result.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", orders.ErrStoreUnavailable, op, err)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func regexQuote(s string) string {
	return regexp.QuoteMeta(s)
}
