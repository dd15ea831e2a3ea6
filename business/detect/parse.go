package detect

import (
	"encoding/json"
	"errors"
	"net/url"
	"scoutIO/business/scrape"
	"scoutIO/domain"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNotProductPage = errors.New("page does not describe a product")
	ErrInvalidPageURL = errors.New("page url must be an absolute http(s) url")
)

// Parse looks for product metadata in a page: schema.org Product blocks in
// JSON-LD first, then OpenGraph product tags. It does not know about any
// particular retailer's markup.
func Parse(pageURL, html string) (domain.DetectedProduct, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.DetectedProduct{}, ErrInvalidPageURL
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.DetectedProduct{}, ErrNotProductPage
	}

	product, found := fromJSONLD(doc)
	og, ogFound := fromOpenGraph(doc)
	if !found && !ogFound {
		return domain.DetectedProduct{}, ErrNotProductPage
	}

	merge(&product, og)
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if product.Title == "" {
		return domain.DetectedProduct{}, ErrNotProductPage
	}

	product.URL = pageURL
	product.Retailer = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if product.ImageURL != "" {
		if ref, err := u.Parse(product.ImageURL); err == nil {
			product.ImageURL = ref.String()
		}
	}

	return product, nil
}

func merge(dst *domain.DetectedProduct, src domain.DetectedProduct) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Price == nil {
		dst.Price = src.Price
	}
	if dst.Currency == "" {
		dst.Currency = src.Currency
	}
	if dst.ImageURL == "" {
		dst.ImageURL = src.ImageURL
	}
	if dst.Rating == nil {
		dst.Rating = src.Rating
	}
}

func meta(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		sel := doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).First()
		if v := strings.TrimSpace(sel.AttrOr("content", "")); v != "" {
			return v
		}
	}
	return ""
}

func fromOpenGraph(doc *goquery.Document) (domain.DetectedProduct, bool) {
	ogType := strings.ToLower(meta(doc, "og:type"))
	amount := meta(doc, "product:price:amount", "og:price:amount")

	p := domain.DetectedProduct{
		Title:    meta(doc, "og:title"),
		Currency: meta(doc, "product:price:currency", "og:price:currency"),
		ImageURL: meta(doc, "og:image", "og:image:url"),
	}
	if amount != "" {
		p.Price = amountPtr(amount)
	}

	isProduct := ogType == "product" || ogType == "og:product" || ogType == "product.item" || p.Price != nil
	return p, isProduct
}

func fromJSONLD(doc *goquery.Document) (domain.DetectedProduct, bool) {
	var found domain.DetectedProduct
	ok := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		if node := findProduct(raw); node != nil {
			found = productFromNode(node)
			ok = true
			return false
		}
		return true
	})

	return found, ok
}

// findProduct walks arrays and @graph containers for a node typed Product.
func findProduct(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if node := findProduct(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if hasType(t["@type"], "Product") {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findProduct(graph)
		}
	}
	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if hasType(item, want) {
				return true
			}
		}
	}
	return false
}

func productFromNode(node map[string]any) domain.DetectedProduct {
	p := domain.DetectedProduct{
		Title:    strings.TrimSpace(stringOf(node["name"])),
		ImageURL: imageOf(node["image"]),
	}

	offer := firstObject(node["offers"])
	if offer != nil {
		price := offer["price"]
		if price == nil {
			price = offer["lowPrice"]
		}
		p.Price = amountPtr(stringOf(price))
		p.Currency = stringOf(offer["priceCurrency"])
	}

	if rating := firstObject(node["aggregateRating"]); rating != nil {
		p.Rating = amountPtr(stringOf(rating["ratingValue"]))
	}

	return p
}

func firstObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func imageOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return imageOf(t[0])
		}
	case map[string]any:
		return stringOf(t["url"])
	}
	return ""
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		b, _ := json.Marshal(t)
		return string(b)
	case json.Number:
		return t.String()
	}
	return ""
}

func amountPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	raw, _ := json.Marshal(s)
	d, ok := scrape.ParseAmount(raw)
	if !ok || d.IsNegative() {
		return nil
	}
	return domain.Float(d.Round(2).InexactFloat64())
}
