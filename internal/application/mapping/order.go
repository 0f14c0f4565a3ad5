package mapping

import "storelens-shopify-sync/internal/domain"

// MappedOrder is an order record reduced to local field sets. Line items and
// the customer reference still carry remote keys; the orchestrator resolves
// them to local row ids (or null when the target has not been synced).
type MappedOrder struct {
	Order            *domain.Order
	Items            []MappedOrderItem
	Addresses        []domain.OrderAddress
	RemoteCustomerID int64 // 0 when the order has no customer
}

// MappedOrderItem pairs a line item row with its remote references.
type MappedOrderItem struct {
	Item            domain.OrderItem
	RemoteVariantID int64 // 0 when the line has no variant
	RemoteProductID int64 // 0 when the line has no product
}

// Order maps a raw order node with its line items and addresses.
func Order(node domain.RemoteOrder, shopID int64) (*MappedOrder, error) {
	remoteID, err := ReduceGID(domain.EntityOrders, "id", node.ID)
	if err != nil {
		return nil, err
	}

	m := &MappedOrder{
		Order: &domain.Order{
			RemoteID:          remoteID,
			ShopID:            shopID,
			OrderNumber:       node.Name,
			FinancialStatus:   node.DisplayFinancialStatus,
			FulfillmentStatus: node.DisplayFulfillmentStatus,
			TotalPrice:        parseDecimal(node.TotalPriceSet.ShopMoney.Amount),
			Currency:          node.TotalPriceSet.ShopMoney.CurrencyCode,
			RemoteCreatedAt:   parseTime(node.CreatedAt),
			RemoteUpdatedAt:   parseTime(node.UpdatedAt),
		},
	}

	if node.Customer != nil {
		id, err := ReduceGID(domain.EntityOrders, "customer.id", node.Customer.ID)
		if err != nil {
			return nil, err
		}
		m.RemoteCustomerID = id
	}

	for _, li := range node.LineItems.Nodes() {
		item, err := orderItem(li)
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, *item)
	}

	if node.ShippingAddress != nil {
		m.Addresses = append(m.Addresses, orderAddress(*node.ShippingAddress, domain.AddressKindShipping))
	}
	if node.BillingAddress != nil {
		m.Addresses = append(m.Addresses, orderAddress(*node.BillingAddress, domain.AddressKindBilling))
	}
	return m, nil
}

func orderItem(node domain.RemoteLineItem) (*MappedOrderItem, error) {
	remoteID, err := ReduceGID(domain.EntityOrders, "lineItem.id", node.ID)
	if err != nil {
		return nil, err
	}
	item := MappedOrderItem{
		Item: domain.OrderItem{
			RemoteID:  remoteID,
			Quantity:  node.Quantity,
			UnitPrice: parseDecimal(node.OriginalUnitPriceSet.ShopMoney.Amount),
		},
	}
	// Deleted variants and products leave dangling references; they reduce
	// to zero and the lookup later degrades to a null foreign key.
	if node.Variant != nil {
		if id, err := ReduceGID(domain.EntityOrders, "lineItem.variant.id", node.Variant.ID); err == nil {
			item.RemoteVariantID = id
		}
	}
	if node.Product != nil {
		if id, err := ReduceGID(domain.EntityOrders, "lineItem.product.id", node.Product.ID); err == nil {
			item.RemoteProductID = id
		}
	}
	return &item, nil
}

func orderAddress(node domain.RemoteAddress, kind string) domain.OrderAddress {
	return domain.OrderAddress{
		Kind:      kind,
		FirstName: node.FirstName,
		LastName:  node.LastName,
		Address1:  node.Address1,
		Address2:  node.Address2,
		City:      node.City,
		Province:  node.Province,
		Country:   node.Country,
		Zip:       node.Zip,
	}
}
