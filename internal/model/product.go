package model

type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	InStock     *bool   `json:"in_stock,omitempty"`
}

// ProductPatch carries a partial product update. Nil fields are not sent.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
}

func (p Product) Available() bool {
	return p.InStock != nil && *p.InStock
}
