package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haruki-store-api/models"
)

// fakeCatalog resolves products from a fixed snapshot.
type fakeCatalog struct {
	products map[string]*models.Product
	err      error
}

func (c *fakeCatalog) ProductByID(_ context.Context, id string) (*models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	product, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func snapshot() *fakeCatalog {
	return &fakeCatalog{products: map[string]*models.Product{
		"p1": {Title: "Tokyo Tee", BasePrice: 199, Currency: "MAD"},
		"p2": {Title: "Shibuya Hoodie", BasePrice: 450, Currency: "MAD"},
	}}
}

func TestBuildManualOrder_PricesSelectionsFromCatalog(t *testing.T) {
	input := ManualOrderInput{
		Customer: Customer{Name: "Walk-in"},
		Shipping: 20,
		Currency: "MAD",
		Selections: []Selection{
			{ProductID: "p1", Qty: 2},
			{ProductID: "p2", Qty: 1},
		},
	}

	draft, err := BuildManualOrder(context.Background(), snapshot(), input)

	require.NoError(t, err)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, "Tokyo Tee", draft.Items[0].Title)
	assert.Equal(t, 398.0, draft.Items[0].LineTotal)
	assert.Equal(t, 848.0, draft.Totals.Subtotal)
	assert.Equal(t, 868.0, draft.Totals.Total)
	assert.Regexp(t, `^ORD-`, draft.OrderCode)
}

func TestBuildManualOrder_DropsInvalidSelections(t *testing.T) {
	input := ManualOrderInput{
		Selections: []Selection{
			{ProductID: "", Qty: 5},
			{ProductID: "p1", Qty: 0},
			{ProductID: "p1", Qty: -2},
			{ProductID: "p1", Qty: 1},
		},
	}

	draft, err := BuildManualOrder(context.Background(), snapshot(), input)

	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, 1, draft.Items[0].Qty)
}

func TestBuildManualOrder_RejectsWhenNothingValidRemains(t *testing.T) {
	for _, selections := range [][]Selection{
		{{ProductID: "", Qty: 1}},
		{{ProductID: "p1", Qty: 0}},
		{},
	} {
		_, err := BuildManualOrder(context.Background(), snapshot(), ManualOrderInput{Selections: selections})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	}
}

func TestBuildManualOrder_RejectionHappensBeforePersistence(t *testing.T) {
	writer := &fakeWriter{}

	_, err := BuildManualOrder(context.Background(), snapshot(), ManualOrderInput{
		Selections: []Selection{{ProductID: "", Qty: 1}},
	})

	require.Error(t, err)
	// The draft never existed, so nothing can have reached the writer.
	assert.Nil(t, writer.insertedOrder)
	assert.Nil(t, writer.insertedItems)
}

func TestBuildManualOrder_UnknownProductIsValidationError(t *testing.T) {
	_, err := BuildManualOrder(context.Background(), snapshot(), ManualOrderInput{
		Selections: []Selection{{ProductID: "ghost", Qty: 1}},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Reason, "ghost")
}

func TestBuildManualOrder_CatalogOutagePropagates(t *testing.T) {
	catalog := &fakeCatalog{err: ErrStoreUnavailable}

	_, err := BuildManualOrder(context.Background(), catalog, ManualOrderInput{
		Selections: []Selection{{ProductID: "p1", Qty: 1}},
	})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestBuildManualOrder_KeepsProvidedCodeAndStatus(t *testing.T) {
	input := ManualOrderInput{
		OrderCode:  "ORD-MANUAL-1",
		Status:     models.OrderConfirmed,
		Selections: []Selection{{ProductID: "p1", Qty: 1}},
	}

	draft, err := BuildManualOrder(context.Background(), snapshot(), input)

	require.NoError(t, err)
	assert.Equal(t, "ORD-MANUAL-1", draft.OrderCode)
	assert.Equal(t, models.OrderConfirmed, draft.Status)
}

func TestManualDraftSubmitsThroughSharedPath(t *testing.T) {
	writer := &fakeWriter{itemsErr: errors.New("disk full")}
	composer := NewComposer(writer, zap.NewNop())

	draft, err := BuildManualOrder(context.Background(), snapshot(), ManualOrderInput{
		Selections: []Selection{{ProductID: "p1", Qty: 1}},
	})
	require.NoError(t, err)

	_, err = composer.Submit(context.Background(), draft)

	var persistErr *PersistenceFailure
	require.ErrorAs(t, err, &persistErr)
	assert.True(t, persistErr.Orphaned())
}
