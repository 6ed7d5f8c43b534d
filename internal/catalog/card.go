package catalog

import (
	"io"
	"strings"

	"github.com/angelmondragon/velora-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fallbacks for product cards missing a field.
const (
	DefaultName  = "Luxury Item"
	DefaultBrand = "Atelier Velora"
)

const (
	cardClass         = "pro"
	primaryImageClass = "pro-img-primary"
	descriptionClass  = "description"
	productIDAttr     = "data-product-id"
)

// Extractor turns product-card markup into cart products.
type Extractor struct {
	ids *IDGenerator
}

// NewExtractor builds an extractor. A nil generator uses the wall clock and a
// random suffix.
func NewExtractor(ids *IDGenerator) *Extractor {
	if ids == nil {
		ids = NewIDGenerator(nil, nil)
	}
	return &Extractor{ids: ids}
}

// ParseCards returns a product for every card in the markup, in document order.
func (e *Extractor) ParseCards(r io.Reader) ([]cart.Product, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse product markup")
	}
	var products []cart.Product
	for _, card := range findAll(doc, func(n *html.Node) bool { return hasClass(n, cardClass) }) {
		products = append(products, e.Extract(card))
	}
	return products, nil
}

// ParseCard returns the first card in the markup.
func (e *Extractor) ParseCard(markup string) (cart.Product, error) {
	products, err := e.ParseCards(strings.NewReader(markup))
	if err != nil {
		return cart.Product{}, err
	}
	if len(products) == 0 {
		return cart.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "no product card found").
			WithDetails(map[string]any{"selector": "." + cardClass})
	}
	return products[0], nil
}

// Extract reads the product fields from a card node. A card without a
// data-product-id gets a generated one, written back onto the node.
func (e *Extractor) Extract(card *html.Node) cart.Product {
	id := attr(card, productIDAttr)
	if id == "" {
		id = e.ids.Next()
		setAttr(card, productIDAttr, id)
	}

	product := cart.Product{
		ID:    id,
		Name:  DefaultName,
		Brand: DefaultBrand,
		Size:  cart.DefaultSize,
		Color: cart.DefaultColor,
	}

	img := findFirst(card, func(n *html.Node) bool { return hasClass(n, primaryImageClass) })
	if img == nil {
		img = findFirst(card, isElement(atom.Img))
	}
	if img != nil {
		product.Image = attr(img, "src")
	}
	if brand := findDescribed(card, atom.Span); brand != nil {
		product.Brand = strings.TrimSpace(textContent(brand))
	}
	if name := findDescribed(card, atom.H5); name != nil {
		product.Name = strings.TrimSpace(textContent(name))
	}
	if price := findDescribed(card, atom.H4); price != nil {
		product.Price = ParsePrice(textContent(price))
	}
	return product
}

// findDescribed matches `.description <tag>` scoped to the card.
func findDescribed(card *html.Node, tag atom.Atom) *html.Node {
	return findFirst(card, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != tag {
			return false
		}
		for p := n.Parent; p != nil; p = p.Parent {
			if hasClass(p, descriptionClass) {
				return true
			}
			if p == card {
				break
			}
		}
		return false
	})
}

func isElement(tag atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == tag
	}
}

// findFirst returns the first descendant of root (excluding root) in document
// order that matches.
func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
