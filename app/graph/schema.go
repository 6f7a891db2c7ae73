// Package graph exposes the menu and orders as a read-only GraphQL schema.
package graph

import (
	"context"
	"errors"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	gql "github.com/hpfoods/hpfoods-api/pkg/graphql"
)

type MenuReader interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id uint) (*models.MenuItem, error)
}

type OrderReader interface {
	ListOrders(ctx context.Context, userID string) ([]models.OrderHeader, error)
	GetOrder(ctx context.Context, id uint) (*models.OrderHeader, error)
}

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"specialTag":  &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

var orderDetailType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderDetail",
	Fields: graphql.Fields{
		"orderDetailId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"orderHeaderId": &graphql.Field{Type: graphql.Int},
		"menuItemId":    &graphql.Field{Type: graphql.Int},
		"menuItem":      &graphql.Field{Type: menuItemType},
		"quantity":      &graphql.Field{Type: graphql.Int},
		"itemName":      &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.Float},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"orderHeaderId":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"pickupName":        &graphql.Field{Type: graphql.String},
		"pickupPhoneNumber": &graphql.Field{Type: graphql.String},
		"pickupEmail":       &graphql.Field{Type: graphql.String},
		"orderDate":         &graphql.Field{Type: graphql.DateTime},
		"applicationUserId": &graphql.Field{Type: graphql.String},
		"orderTotalPrice":   &graphql.Field{Type: graphql.Float},
		"status":            &graphql.Field{Type: graphql.String},
		"totalItems":        &graphql.Field{Type: graphql.Int},
		"orderDetails":      &graphql.Field{Type: graphql.NewList(orderDetailType)},
	},
})

// NewSchema builds the query root over menu and orders.
func NewSchema(menu MenuReader, orders OrderReader) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menuItems": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					items, err := menu.List(p.Context)
					return items, publicError(err)
				},
			},
			"menuItem": &graphql.Field{
				Type: menuItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(int)
					if id < 0 {
						return nil, nil
					}
					item, err := menu.Get(p.Context, uint(id))
					if errors.Is(err, apperr.ErrNotFound) {
						return nil, nil
					}
					return item, publicError(err)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					userID, _ := p.Args["userId"].(string)
					list, err := orders.ListOrders(p.Context, userID)
					return list, publicError(err)
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(int)
					if id < 0 {
						return nil, apperr.InvalidArgument("Invalid order ID")
					}
					order, err := orders.GetOrder(p.Context, uint(id))
					if errors.Is(err, apperr.ErrNotFound) {
						return nil, nil
					}
					return order, publicError(err)
				},
			},
		},
	})
	return gql.NewSchema(query)
}

// publicError strips causes so only client-facing messages reach the
// response.
func publicError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(strings.Join(apperr.MessagesOf(err), "; "))
}
