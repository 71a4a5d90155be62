package models

// Note is a free-standing text resource with no relationship to the URI
// registry tables.
type Note struct {
	ObjID   string `json:"obj_id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Audit
}

// Item is a free-standing inventory resource. Price is stored in cents.
type Item struct {
	ObjID       string `json:"obj_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int    `json:"price_cents"`
	Description string `json:"description,omitempty"`
	Audit
}
