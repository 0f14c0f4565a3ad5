package shopify

import (
	"context"

	"storelens-shopify-sync/internal/domain"
)

// One typed query document per entity type. Field selection and pagination
// variables live here, next to the response structs they decode into, so a
// shape change fails at compile time rather than at call sites.

const shopQuery = `query {
	shop {
		id
		name
		email
		myshopifyDomain
		currencyCode
	}
}`

const productsQuery = `query($first: Int!, $after: String) {
	products(first: $first, after: $after) {
		edges {
			node {
				id
				title
				handle
				vendor
				status
				createdAt
				updatedAt
				variants(first: 100) {
					edges {
						node {
							id
							title
							price
							sku
							inventoryQuantity
							createdAt
							updatedAt
						}
					}
					pageInfo { hasNextPage endCursor }
				}
				images(first: 50) {
					edges {
						node {
							id
							altText
							width
							height
							url
						}
					}
					pageInfo { hasNextPage endCursor }
				}
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

const collectionsQuery = `query($first: Int!, $after: String) {
	collections(first: $first, after: $after) {
		edges {
			node {
				id
				handle
				title
				products(first: 250) {
					edges { node { id } }
					pageInfo { hasNextPage endCursor }
				}
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

const customersQuery = `query($first: Int!, $after: String) {
	customers(first: $first, after: $after) {
		edges {
			node {
				id
				firstName
				lastName
				email
				phone
				amountSpent { amount currencyCode }
				numberOfOrders
				createdAt
				updatedAt
				addresses {
					id
					firstName
					lastName
					address1
					address2
					city
					province
					country
					zip
					default
				}
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

const ordersQuery = `query($first: Int!, $after: String) {
	orders(first: $first, after: $after) {
		edges {
			node {
				id
				name
				displayFinancialStatus
				displayFulfillmentStatus
				totalPriceSet { shopMoney { amount currencyCode } }
				customer { id }
				createdAt
				updatedAt
				lineItems(first: 100) {
					edges {
						node {
							id
							quantity
							originalUnitPriceSet { shopMoney { amount currencyCode } }
							variant { id }
							product { id }
						}
					}
					pageInfo { hasNextPage endCursor }
				}
				shippingAddress {
					firstName lastName address1 address2 city province country zip
				}
				billingAddress {
					firstName lastName address1 address2 city province country zip
				}
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

func pageVars(cursor string, first int) map[string]any {
	vars := map[string]any{"first": first}
	if cursor != "" {
		vars["after"] = cursor
	}
	return vars
}

// GetShop fetches the shop record.
func (c *Client) GetShop(ctx context.Context, sc domain.SyncContext) (*domain.RemoteShop, error) {
	var payload struct {
		Shop domain.RemoteShop `json:"shop"`
	}
	if err := c.gql.run(ctx, sc, "shop", shopQuery, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Shop, nil
}

// ProductsPage fetches one page of products with nested variants and images.
func (c *Client) ProductsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteProduct], error) {
	var payload struct {
		Products domain.Connection[domain.RemoteProduct] `json:"products"`
	}
	if err := c.gql.run(ctx, sc, "products", productsQuery, pageVars(cursor, first), &payload); err != nil {
		return nil, err
	}
	return &payload.Products, nil
}

// CollectionsPage fetches one page of collections with member product ids.
func (c *Client) CollectionsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCollection], error) {
	var payload struct {
		Collections domain.Connection[domain.RemoteCollection] `json:"collections"`
	}
	if err := c.gql.run(ctx, sc, "collections", collectionsQuery, pageVars(cursor, first), &payload); err != nil {
		return nil, err
	}
	return &payload.Collections, nil
}

// CustomersPage fetches one page of customers with nested addresses.
func (c *Client) CustomersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCustomer], error) {
	var payload struct {
		Customers domain.Connection[domain.RemoteCustomer] `json:"customers"`
	}
	if err := c.gql.run(ctx, sc, "customers", customersQuery, pageVars(cursor, first), &payload); err != nil {
		return nil, err
	}
	return &payload.Customers, nil
}

// OrdersPage fetches one page of orders with nested line items and addresses.
func (c *Client) OrdersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteOrder], error) {
	var payload struct {
		Orders domain.Connection[domain.RemoteOrder] `json:"orders"`
	}
	if err := c.gql.run(ctx, sc, "orders", ordersQuery, pageVars(cursor, first), &payload); err != nil {
		return nil, err
	}
	return &payload.Orders, nil
}
