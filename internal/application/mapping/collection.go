package mapping

import "storelens-shopify-sync/internal/domain"

// MappedCollection pairs a collection row with the remote ids of its member
// products. Membership is resolved to local product ids by the orchestrator;
// members that have not been synced are skipped.
type MappedCollection struct {
	Collection      *domain.Collection
	MemberRemoteIDs []int64
}

// Collection maps a raw collection node.
func Collection(node domain.RemoteCollection, shopID int64) (*MappedCollection, error) {
	remoteID, err := ReduceGID(domain.EntityCollections, "id", node.ID)
	if err != nil {
		return nil, err
	}

	m := &MappedCollection{
		Collection: &domain.Collection{
			RemoteID: remoteID,
			ShopID:   shopID,
			Handle:   node.Handle,
			Title:    node.Title,
		},
	}
	for _, ref := range node.Products.Nodes() {
		id, err := ReduceGID(domain.EntityCollections, "product.id", ref.ID)
		if err != nil {
			return nil, err
		}
		m.MemberRemoteIDs = append(m.MemberRemoteIDs, id)
	}
	return m, nil
}

// Shop maps the raw shop record onto tenant fields. The access token and
// domain are already known from the OAuth bootstrap and are not overwritten
// here.
func Shop(node domain.RemoteShop) (*domain.Shop, error) {
	remoteID, err := ReduceGID(domain.EntityShop, "id", node.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Shop{
		RemoteID: remoteID,
		Name:     node.Name,
		Email:    node.Email,
		Currency: node.CurrencyCode,
	}, nil
}
