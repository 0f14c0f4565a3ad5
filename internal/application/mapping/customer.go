package mapping

import "storelens-shopify-sync/internal/domain"

// Customer maps a raw customer node and its addresses. Spend and order-count
// aggregates stay null when the API scope omits them.
func Customer(node domain.RemoteCustomer, shopID int64) (*domain.Customer, error) {
	remoteID, err := ReduceGID(domain.EntityCustomers, "id", node.ID)
	if err != nil {
		return nil, err
	}

	c := &domain.Customer{
		RemoteID:        remoteID,
		ShopID:          shopID,
		FirstName:       node.FirstName,
		LastName:        node.LastName,
		Email:           node.Email,
		Phone:           node.Phone,
		OrdersCount:     parseCount(node.NumberOfOrders),
		RemoteCreatedAt: parseTime(node.CreatedAt),
		RemoteUpdatedAt: parseTime(node.UpdatedAt),
	}
	if node.AmountSpent != nil {
		c.TotalSpent = parseDecimal(node.AmountSpent.Amount)
	}

	for _, a := range node.Addresses {
		addr, err := CustomerAddress(a)
		if err != nil {
			return nil, err
		}
		c.Addresses = append(c.Addresses, *addr)
	}
	return c, nil
}

// CustomerAddress maps a raw address node. The customer reference is filled
// in by the caller once the parent's local id is known.
func CustomerAddress(node domain.RemoteAddress) (*domain.CustomerAddress, error) {
	remoteID, err := ReduceGID(domain.EntityCustomers, "address.id", node.ID)
	if err != nil {
		return nil, err
	}
	return &domain.CustomerAddress{
		RemoteID:  remoteID,
		Address1:  node.Address1,
		Address2:  node.Address2,
		City:      node.City,
		Province:  node.Province,
		Country:   node.Country,
		Zip:       node.Zip,
		IsDefault: node.Default,
	}, nil
}
