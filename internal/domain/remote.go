package domain

// Raw records as returned by the Admin GraphQL API. IDs are opaque gids
// ("gid://shopify/Product/12345"); the mappers reduce them to int64 keys.

// PageInfo is the cursor-pagination descriptor carried by every connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Edge wraps one node of a connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is the GraphQL cursor-paged envelope: edges[].node plus
// pageInfo{hasNextPage, endCursor}.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Nodes flattens the edge envelope.
func (c Connection[T]) Nodes() []T {
	nodes := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes
}

// RemoteMoney is a money value as serialized by the platform.
type RemoteMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// RemoteShop is the shop record consumed during shop sync.
type RemoteShop struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	MyshopifyDomain string `json:"myshopifyDomain"`
	CurrencyCode    string `json:"currencyCode"`
}

// RemoteProduct is a product node with its nested variant and image
// connections.
type RemoteProduct struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Handle    string                    `json:"handle"`
	Vendor    string                    `json:"vendor"`
	Status    string                    `json:"status"`
	CreatedAt string                    `json:"createdAt"`
	UpdatedAt string                    `json:"updatedAt"`
	Variants  Connection[RemoteVariant] `json:"variants"`
	Images    Connection[RemoteImage]   `json:"images"`
}

// RemoteVariant is a product variant node.
type RemoteVariant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity *int   `json:"inventoryQuantity"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// RemoteImage is a product image node.
type RemoteImage struct {
	ID      string `json:"id"`
	AltText string `json:"altText"`
	Width   *int   `json:"width"`
	Height  *int   `json:"height"`
	URL     string `json:"url"`
}

// RemoteCustomer is a customer node with its nested addresses. The spend and
// order-count aggregates are absent under restricted scopes.
type RemoteCustomer struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AmountSpent    *RemoteMoney    `json:"amountSpent"`
	NumberOfOrders *string         `json:"numberOfOrders"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
	Addresses      []RemoteAddress `json:"addresses"`
}

// RemoteAddress is a postal address attached to a customer or an order.
type RemoteAddress struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Default   bool   `json:"default"`
}

// RemoteOrder is an order node with nested line items and addresses.
type RemoteOrder struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	DisplayFinancialStatus   string `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string `json:"displayFulfillmentStatus"`
	TotalPriceSet            struct {
		ShopMoney RemoteMoney `json:"shopMoney"`
	} `json:"totalPriceSet"`
	Customer *struct {
		ID string `json:"id"`
	} `json:"customer"`
	CreatedAt       string                     `json:"createdAt"`
	UpdatedAt       string                     `json:"updatedAt"`
	LineItems       Connection[RemoteLineItem] `json:"lineItems"`
	ShippingAddress *RemoteAddress             `json:"shippingAddress"`
	BillingAddress  *RemoteAddress             `json:"billingAddress"`
}

// RemoteLineItem is one order line node.
type RemoteLineItem struct {
	ID                   string `json:"id"`
	Quantity             int    `json:"quantity"`
	OriginalUnitPriceSet struct {
		ShopMoney RemoteMoney `json:"shopMoney"`
	} `json:"originalUnitPriceSet"`
	Variant *struct {
		ID string `json:"id"`
	} `json:"variant"`
	Product *struct {
		ID string `json:"id"`
	} `json:"product"`
}

// RemoteCollection is a collection node with the ids of its member products.
type RemoteCollection struct {
	ID       string                       `json:"id"`
	Handle   string                       `json:"handle"`
	Title    string                       `json:"title"`
	Products Connection[RemoteProductRef] `json:"products"`
}

// RemoteProductRef is a bare product reference inside a collection node.
type RemoteProductRef struct {
	ID string `json:"id"`
}
