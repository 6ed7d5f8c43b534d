package cart

import (
	cartdto "github.com/angelmondragon/velora-storefront/api/controllers/cart/dto"
	"github.com/angelmondragon/velora-storefront/api/validators"
	cartsvc "github.com/angelmondragon/velora-storefront/internal/cart"
)

const maxFieldLength = 200

func toProduct(payload cartdto.ProductRequest) cartsvc.Product {
	return cartsvc.Product{
		ID:    validators.SanitizeString(payload.ID, 64),
		Name:  validators.SanitizeString(payload.Name, maxFieldLength),
		Brand: validators.SanitizeString(payload.Brand, maxFieldLength),
		Price: payload.Price,
		Image: validators.SanitizeString(payload.Image, 2048),
		Size:  validators.SanitizeString(payload.Size, 32),
		Color: validators.SanitizeString(payload.Color, 64),
	}
}
