package cartdto

// ProductRequest carries the product data a card would supply.
type ProductRequest struct {
	ID    string  `json:"id" validate:"required,max=64"`
	Name  string  `json:"name" validate:"max=200"`
	Brand string  `json:"brand" validate:"max=200"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image" validate:"max=2048"`
	Size  string  `json:"size" validate:"max=32"`
	Color string  `json:"color" validate:"max=64"`
}

// CardRequest carries product-card markup.
type CardRequest struct {
	HTML string `json:"html" validate:"required,max=65536"`
}

// QuantityRequest sets a line quantity. Out-of-range values are accepted and
// ignored by the service.
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
