package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/app/graph"
	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
)

type fakeMenu struct{}

func (fakeMenu) List(context.Context) ([]models.MenuItem, error) {
	return []models.MenuItem{{ID: 1, Name: "Samosa", Price: 4.5}}, nil
}

func (fakeMenu) Get(_ context.Context, id uint) (*models.MenuItem, error) {
	if id != 1 {
		return nil, apperr.NotFound("Menu item not found")
	}
	return &models.MenuItem{ID: 1, Name: "Samosa", Price: 4.5}, nil
}

type fakeOrders struct {
	userID string
	err    error
}

func (f *fakeOrders) ListOrders(_ context.Context, userID string) ([]models.OrderHeader, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return []models.OrderHeader{{
		ID:         4,
		PickupName: "Asha",
		Status:     models.StatusConfirmed,
		OrderDetails: []models.OrderDetail{
			{ID: 9, MenuItemID: 1, Quantity: 2, ItemName: "Samosa", Price: 4.5},
		},
	}}, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id uint) (*models.OrderHeader, error) {
	return nil, apperr.NotFound("Order not found")
}

func run(t *testing.T, orders *fakeOrders, query string) *graphql.Result {
	t.Helper()
	schema, err := graph.NewSchema(fakeMenu{}, orders)
	require.NoError(t, err)
	return graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: context.Background()})
}

func TestMenuQueries(t *testing.T) {
	res := run(t, &fakeOrders{}, `{ menuItems { id name price } menuItem(id: 1) { name } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	data := res.Data.(map[string]any)
	items := data["menuItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Samosa", items[0].(map[string]any)["name"])
	assert.Equal(t, 4.5, items[0].(map[string]any)["price"])
	assert.Equal(t, "Samosa", data["menuItem"].(map[string]any)["name"])
}

func TestOrdersQueryPassesUserFilter(t *testing.T) {
	orders := &fakeOrders{}
	res := run(t, orders, `{ orders(userId: "u-1") { orderHeaderId status orderDetails { itemName quantity } } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)
	assert.Equal(t, "u-1", orders.userID)

	list := res.Data.(map[string]any)["orders"].([]any)
	require.Len(t, list, 1)
	order := list[0].(map[string]any)
	assert.Equal(t, models.StatusConfirmed, order["status"])
	details := order["orderDetails"].([]any)
	assert.Equal(t, "Samosa", details[0].(map[string]any)["itemName"])
}

func TestMissingOrderIsNull(t *testing.T) {
	res := run(t, &fakeOrders{}, `{ order(id: 42) { orderHeaderId } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)
	assert.Nil(t, res.Data.(map[string]any)["order"])
}

func TestStoreErrorsHideCauses(t *testing.T) {
	orders := &fakeOrders{err: apperr.Persistence("Error while loading orders", errors.New("dial tcp 10.0.0.5:5432"))}
	res := run(t, orders, `{ orders { orderHeaderId } }`)
	require.True(t, res.HasErrors())
	assert.Equal(t, "Error while loading orders", res.Errors[0].Message)
}
