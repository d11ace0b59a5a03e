package jsonbin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// Document is the stored record: a single products array.
type Document struct {
	Products catalog.Catalog `json:"products"`
}

// Metadata mirrors the metadata object JSONBin attaches to responses.
type Metadata struct {
	ID        string `json:"id,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	Private   bool   `json:"private"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// latestResponse mirrors GET /v3/b/<bin>/latest. Products stay raw so the shape can be
// checked before decoding.
type latestResponse struct {
	Record *struct {
		Products json.RawMessage `json:"products"`
	} `json:"record"`
	Metadata Metadata `json:"metadata"`
}

func (r latestResponse) products() (catalog.Catalog, error) {
	if r.Record == nil {
		return nil, fmt.Errorf("%w: missing record", ErrMalformed)
	}
	raw := bytes.TrimSpace(r.Record.Products)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: record.products is not an array", ErrMalformed)
	}
	products, err := catalog.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", ErrMalformed, err)
	}
	return products, nil
}
