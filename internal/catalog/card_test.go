package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/velora-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"github.com/stretchr/testify/require"
)

const shopMarkup = `
<section id="product1">
  <div class="pro" data-product-id="coat-01">
    <img src="img/coat-hover.jpg" alt="">
    <img class="pro-img-primary" src="img/coat.jpg" alt="">
    <div class="description">
      <span> Maison Noir </span>
      <h5>Cashmere Coat</h5>
      <h4>EGP 12,500.00</h4>
    </div>
    <a href="#" class="pro-cart"><i class="fa-solid fa-bag-shopping"></i></a>
  </div>
  <div class="pro">
    <img src="img/bag.jpg" alt="">
    <div class="description">
      <h4>Price on request</h4>
    </div>
  </div>
</section>`

func fixedExtractor() *Extractor {
	now := func() time.Time { return time.UnixMilli(1760000000000) }
	suffix := func() string { return "abc123xyz" }
	return NewExtractor(NewIDGenerator(now, suffix))
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	products, err := fixedExtractor().ParseCards(strings.NewReader(shopMarkup))
	require.NoError(t, err)
	require.Len(t, products, 2)

	require.Equal(t, cart.Product{
		ID:    "coat-01",
		Name:  "Cashmere Coat",
		Brand: "Maison Noir",
		Price: 12500,
		Image: "img/coat.jpg",
		Size:  "M",
		Color: "Default",
	}, products[0])

	fallback := products[1]
	require.Equal(t, "prod-1760000000000-abc123xyz", fallback.ID)
	require.Equal(t, DefaultName, fallback.Name)
	require.Equal(t, DefaultBrand, fallback.Brand)
	require.Equal(t, "img/bag.jpg", fallback.Image)
	require.Zero(t, fallback.Price)
}

func TestParseCardWithoutImageOrDescription(t *testing.T) {
	t.Parallel()

	product, err := fixedExtractor().ParseCard(`<div class="pro featured" data-product-id="p9"></div>`)
	require.NoError(t, err)
	require.Equal(t, "p9", product.ID)
	require.Empty(t, product.Image)
	require.Equal(t, DefaultName, product.Name)
	require.Zero(t, product.Price)
}

func TestParseCardRequiresCard(t *testing.T) {
	t.Parallel()

	_, err := fixedExtractor().ParseCard(`<div class="product">nope</div>`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDescriptionSelectorsAreScoped(t *testing.T) {
	t.Parallel()

	product, err := fixedExtractor().ParseCard(`
<div class="pro" data-product-id="p1">
  <span>Not a brand</span>
  <div class="description"><p><span>Inner Brand</span></p><h5>Name</h5></div>
</div>`)
	require.NoError(t, err)
	require.Equal(t, "Inner Brand", product.Brand)
	require.Equal(t, "Name", product.Name)
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"EGP 1,250.00": 1250,
		"$99":          99,
		"1.2.3":        1.2,
		".5":           0.5,
		"7.":           7,
		"":             0,
		"Sold out":     0,
		"EGP .":        0,
	}
	for input, want := range cases {
		require.Equal(t, want, ParsePrice(input), input)
	}
}

func TestIDGeneratorShape(t *testing.T) {
	t.Parallel()

	id := NewIDGenerator(nil, nil).Next()
	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	require.Equal(t, "prod", parts[0])
	require.Len(t, parts[2], idSuffixSize)
	for _, r := range parts[2] {
		require.True(t, strings.ContainsRune(base36, r), "unexpected rune %q", r)
	}
}
