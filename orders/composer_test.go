package orders

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
)

// fakeWriter implements OrderWriter with injectable failures per phase.
type fakeWriter struct {
	headerErr error
	itemsErr  error

	insertedOrder *models.OrderRecord
	insertedItems []models.OrderItemRecord
	statusCalls   int
	lastStatus    models.OrderStatus
}

func (w *fakeWriter) InsertOrder(_ context.Context, order *models.OrderRecord) (primitive.ObjectID, error) {
	if w.headerErr != nil {
		return primitive.NilObjectID, w.headerErr
	}
	w.insertedOrder = order
	return primitive.NewObjectID(), nil
}

func (w *fakeWriter) InsertOrderItems(_ context.Context, _ primitive.ObjectID, items []models.OrderItemRecord) error {
	if w.itemsErr != nil {
		return w.itemsErr
	}
	w.insertedItems = items
	return nil
}

func (w *fakeWriter) UpdateStatus(_ context.Context, _ primitive.ObjectID, status models.OrderStatus) error {
	w.statusCalls++
	w.lastStatus = status
	return nil
}

func teeDraft() Draft {
	items := ItemsFromCartLines([]models.CartLineItem{
		{ProductID: "p1", Title: "Tee", Qty: 1, UnitPrice: 199},
	})
	return Draft{
		OrderCode: "X1",
		Customer:  Customer{Name: "Yuki Ito", Phone: "+212600000000", Email: "yuki@example.com"},
		Currency:  "MAD",
		Items:     items,
		Totals:    pricing.Totals{Subtotal: 199, Shipping: 0, Total: 199},
	}
}

func TestComposeHandoffMessage(t *testing.T) {
	draft := teeDraft()

	message := ComposeHandoffMessage(draft.OrderCode, draft.Customer, draft.Items, draft.Totals, "leave at door", "MAD")

	assert.Contains(t, message, "Order ID: X1")
	assert.Contains(t, message, "Name: Yuki Ito | Phone: +212600000000 | Email: yuki@example.com")
	assert.Contains(t, message, "- Tee ( / ) x1 @ 199 MAD = 199.00")
	assert.Contains(t, message, "Subtotal: 199.00 MAD")
	assert.Contains(t, message, "TOTAL: 199.00 MAD")
	assert.Contains(t, message, "Notes: leave at door")
}

func TestComposeHandoffMessage_AbsentFieldsRenderEmpty(t *testing.T) {
	message := ComposeHandoffMessage("X2", Customer{}, nil, pricing.Totals{}, "", "MAD")

	assert.Contains(t, message, "Name:  | Phone:  | Email: ")
	assert.Contains(t, message, "Address: \n")
	assert.Contains(t, message, "TOTAL: 0.00 MAD")
}

func TestSubmit_PersistsHeaderThenItems(t *testing.T) {
	writer := &fakeWriter{}
	composer := NewComposer(writer, zap.NewNop())

	record, err := composer.Submit(context.Background(), teeDraft())

	require.NoError(t, err)
	assert.False(t, record.ID.IsZero())
	assert.Equal(t, models.OrderPending, record.Status)
	assert.Equal(t, 199.0, record.Total)
	require.Len(t, writer.insertedItems, 1)
	assert.Equal(t, record.ID, writer.insertedItems[0].OrderID)
	assert.Equal(t, 199.0, writer.insertedItems[0].LineTotal)
}

func TestSubmit_EmptyDraftIsValidationError(t *testing.T) {
	writer := &fakeWriter{}
	composer := NewComposer(writer, zap.NewNop())

	_, err := composer.Submit(context.Background(), Draft{OrderCode: "X1"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, writer.insertedOrder)
}

func TestSubmit_HeaderFailureIsDistinctFromItemsFailure(t *testing.T) {
	headerWriter := &fakeWriter{headerErr: errors.New("insert refused")}
	_, headerErr := NewComposer(headerWriter, zap.NewNop()).Submit(context.Background(), teeDraft())

	itemsWriter := &fakeWriter{itemsErr: errors.New("insert refused")}
	record, itemsErr := NewComposer(itemsWriter, zap.NewNop()).Submit(context.Background(), teeDraft())

	var headerFailure *PersistenceFailure
	require.ErrorAs(t, headerErr, &headerFailure)
	assert.Equal(t, StageHeader, headerFailure.Stage)
	assert.False(t, headerFailure.Orphaned())

	var itemsFailure *PersistenceFailure
	require.ErrorAs(t, itemsErr, &itemsFailure)
	assert.Equal(t, StageItems, itemsFailure.Stage)
	assert.True(t, itemsFailure.Orphaned())
	// The orphaned header is returned so the caller can surface it.
	require.NotNil(t, record)
	assert.Equal(t, itemsFailure.OrderID, record.ID.Hex())
}

func TestSubmit_RejectsUnknownStatus(t *testing.T) {
	writer := &fakeWriter{}
	draft := teeDraft()
	draft.Status = "misplaced"

	_, err := NewComposer(writer, zap.NewNop()).Submit(context.Background(), draft)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSetStatus(t *testing.T) {
	writer := &fakeWriter{}
	composer := NewComposer(writer, zap.NewNop())
	id := primitive.NewObjectID()

	require.NoError(t, composer.SetStatus(context.Background(), id, models.OrderShipped))
	assert.Equal(t, models.OrderShipped, writer.lastStatus)

	err := composer.SetStatus(context.Background(), id, "teleported")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 1, writer.statusCalls)
}

func TestItemsFromCartLines_ComputesLineTotals(t *testing.T) {
	items := ItemsFromCartLines([]models.CartLineItem{
		{ProductID: "p1", VariantID: "v1", Title: "Hoodie", Size: "M", Color: "Black", Qty: 3, UnitPrice: 59.99},
	})

	require.Len(t, items, 1)
	assert.Equal(t, 179.97, items[0].LineTotal)
	assert.Equal(t, "v1", items[0].VariantID)
}

func TestItemsFromCartLines_MalformedPriceDegradesToZero(t *testing.T) {
	items := ItemsFromCartLines([]models.CartLineItem{
		{ProductID: "p1", Title: "Tee", Qty: 2, UnitPrice: math.NaN()},
		{ProductID: "p2", Title: "Cap", Qty: 1, UnitPrice: math.Inf(-1)},
	})

	require.Len(t, items, 2)
	assert.Equal(t, 0.0, items[0].LineTotal)
	assert.Equal(t, 0.0, items[1].LineTotal)
}

func TestNewOrderCode(t *testing.T) {
	code := NewOrderCode()
	assert.Regexp(t, `^ORD-[0-9A-Z]+-[0-9A-F]{4}$`, code)
	assert.NotEqual(t, code, NewOrderCode())
}
