// Package mapping converts raw remote records into local rows. Every mapper
// is a pure function: the same raw record always produces the same field set.
package mapping

import (
	"strconv"
	"strings"

	"storelens-shopify-sync/internal/domain"
)

// ReduceGID reduces an opaque remote id ("gid://shopify/Product/987654321")
// to its trailing numeric segment. The conversion is exact: the resulting
// int64 is the equality key for every later lookup. A non-numeric suffix is
// a MappingError attributed to the given entity and field.
func ReduceGID(entity domain.EntityType, field, gid string) (int64, error) {
	if gid == "" {
		return 0, &domain.MappingError{Entity: entity, Field: field, Reason: "empty id"}
	}
	// Address gids carry a query suffix ("...?model_name=CustomerAddress").
	if i := strings.IndexByte(gid, '?'); i >= 0 {
		gid = gid[:i]
	}
	seg := gid
	if i := strings.LastIndexByte(gid, '/'); i >= 0 {
		seg = gid[i+1:]
	}
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return 0, &domain.MappingError{Entity: entity, Field: field, Reason: "non-numeric id suffix " + strconv.Quote(seg)}
	}
	return id, nil
}
