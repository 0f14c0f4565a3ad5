package mapping

import "storelens-shopify-sync/internal/domain"

// Product maps a raw product node and its nested variants and images onto
// local rows. A bad id anywhere in the record fails the whole record; the
// orchestrator's per-type policy decides what that failure aborts.
func Product(node domain.RemoteProduct, shopID int64) (*domain.Product, error) {
	remoteID, err := ReduceGID(domain.EntityProducts, "id", node.ID)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		RemoteID:        remoteID,
		ShopID:          shopID,
		Title:           node.Title,
		Handle:          node.Handle,
		Vendor:          node.Vendor,
		Status:          node.Status,
		RemoteCreatedAt: parseTime(node.CreatedAt),
		RemoteUpdatedAt: parseTime(node.UpdatedAt),
	}

	for _, v := range node.Variants.Nodes() {
		variant, err := Variant(v)
		if err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, *variant)
	}
	for _, img := range node.Images.Nodes() {
		image, err := Image(img)
		if err != nil {
			return nil, err
		}
		p.Images = append(p.Images, *image)
	}
	return p, nil
}

// Variant maps a raw variant node. The product reference is filled in by the
// caller once the parent's local id is known.
func Variant(node domain.RemoteVariant) (*domain.ProductVariant, error) {
	remoteID, err := ReduceGID(domain.EntityProducts, "variant.id", node.ID)
	if err != nil {
		return nil, err
	}
	v := &domain.ProductVariant{
		RemoteID:        remoteID,
		Title:           node.Title,
		Price:           parseDecimal(node.Price),
		SKU:             node.SKU,
		RemoteCreatedAt: parseTime(node.CreatedAt),
		RemoteUpdatedAt: parseTime(node.UpdatedAt),
	}
	// Inventory quantity has a non-null schema default of zero.
	if node.InventoryQuantity != nil {
		v.InventoryQuantity = *node.InventoryQuantity
	}
	return v, nil
}

// Image maps a raw image node.
func Image(node domain.RemoteImage) (*domain.ProductImage, error) {
	remoteID, err := ReduceGID(domain.EntityProducts, "image.id", node.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ProductImage{
		RemoteID: remoteID,
		AltText:  node.AltText,
		Width:    node.Width,
		Height:   node.Height,
		SrcURL:   node.URL,
	}, nil
}
