// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fripetn/storefront/internal/config"
	"github.com/fripetn/storefront/internal/models"
)

const (
	defaultProductName        = "Product"
	defaultProductCategory    = "uncategorized"
	defaultProductDescription = "Premium quality product"
	defaultProductRating      = 4.0
	defaultProductStock       = 100
)

// CatalogService fetches product records from the remote content service and
// normalizes them into the canonical Product shape. Fetching fails soft: the
// catalog must never take page rendering down with it, so every failure
// degrades to an empty snapshot.
type CatalogService struct {
	baseURL      string
	defaultImage string
	cacheTTL     time.Duration
	client       *http.Client

	generation uint64 // fetch ticket, incremented before every refresh

	mu        sync.RWMutex
	products  []models.Product
	fetchedAt time.Time
	applied   uint64 // generation of the snapshot currently held
	healthy   bool   // whether the applied snapshot came from a successful fetch
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriceFilterResult partitions a product list by price range. Matching items
// stay interactive; dimmed ones are rendered non-interactive by the UI.
type PriceFilterResult struct {
	Matching []models.Product `json:"matching"`
	Dimmed   []models.Product `json:"dimmed"`
}

func NewCatalogService(cfg config.CatalogConfig) *CatalogService {
	return &CatalogService{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		defaultImage: cfg.DefaultImage,
		cacheTTL:     time.Duration(cfg.CacheTTL) * time.Second,
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
	}
}

// Remote record shapes. Fields that arrive in more than one form are kept
// raw and decoded leniently during normalization.
type remoteEnvelope struct {
	Data []remoteProduct `json:"data"`
}

type remoteProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	OldPrice    json.RawMessage `json:"oldPrice"`
	Image       *remoteImage    `json:"image"`
	Category    string          `json:"category"`
	Description json.RawMessage `json:"description"`
	Badge       string          `json:"badge"`
	Rating      float64         `json:"rating"`
	Stock       json.RawMessage `json:"stock"`
}

type remoteImage struct {
	URL     string `json:"url"`
	Formats struct {
		Small struct {
			URL string `json:"url"`
		} `json:"small"`
	} `json:"formats"`
}

type richTextBlock struct {
	Children []struct {
		Text string `json:"text"`
	} `json:"children"`
}

// FetchCatalog retrieves and normalizes the full catalog. Any transport,
// status or decode failure yields an empty sequence, never an error.
func (s *CatalogService) FetchCatalog(ctx context.Context) []models.Product {
	url := s.baseURL + "/api/products?populate=*"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to build catalog request")
		catalogFetchesTotal.WithLabelValues("error").Inc()
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch catalog")
		catalogFetchesTotal.WithLabelValues("error").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Error("Catalog endpoint returned non-OK status")
		catalogFetchesTotal.WithLabelValues("error").Inc()
		return nil
	}

	var envelope remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		logrus.WithError(err).Error("Failed to decode catalog response")
		catalogFetchesTotal.WithLabelValues("error").Inc()
		return nil
	}

	products := make([]models.Product, 0, len(envelope.Data))
	for _, record := range envelope.Data {
		products = append(products, s.normalize(record))
	}

	catalogFetchesTotal.WithLabelValues("ok").Inc()
	logrus.WithField("count", len(products)).Info("Catalog fetched")
	return products
}

// normalize maps one remote record into a Product. It is total: every
// record, however malformed, yields a valid Product.
func (s *CatalogService) normalize(record remoteProduct) models.Product {
	product := models.Product{
		ID:          record.ID,
		Name:        record.Title,
		Price:       parseFlexNumber(record.Price),
		Image:       s.resolveImage(record.Image),
		Category:    record.Category,
		Description: flattenDescription(record.Description),
		Badge:       record.Badge,
		Rating:      record.Rating,
		Stock:       parseStock(record.Stock),
	}

	if product.Name == "" {
		product.Name = defaultProductName
	}
	if product.Category == "" {
		product.Category = defaultProductCategory
	}
	if product.Rating == 0 {
		product.Rating = defaultProductRating
	}
	if old, ok := parseOptionalNumber(record.OldPrice); ok {
		product.OldPrice = &old
	}

	return product
}

func (s *CatalogService) resolveImage(image *remoteImage) string {
	if image == nil {
		return s.defaultImage
	}

	url := image.URL
	if url == "" {
		url = image.Formats.Small.URL
	}
	if url == "" {
		return s.defaultImage
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return s.baseURL + url
}

func parseFlexNumber(raw json.RawMessage) float64 {
	value, _ := parseOptionalNumber(raw)
	return value
}

// parseOptionalNumber accepts a JSON number or a numeric string. Anything
// else, including null, reports absent.
func parseOptionalNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return number, true
		}
	}

	return 0, false
}

// parseStock treats explicit null or absence as "in stock" (the default
// count) while a present zero stays zero.
func parseStock(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultProductStock
	}
	if value, ok := parseOptionalNumber(raw); ok {
		if value < 0 {
			return 0
		}
		return int(value)
	}
	return 0
}

// flattenDescription handles the two description representations the CMS
// emits: a plain string, or a rich-text document of blocks whose child text
// spans are concatenated in document order.
func flattenDescription(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultProductDescription
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return defaultProductDescription
		}
		return text
	}

	var blocks []richTextBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, block := range blocks {
			for _, child := range block.Children {
				if child.Text != "" {
					parts = append(parts, child.Text)
				}
			}
		}
		if flattened := strings.TrimSpace(strings.Join(parts, " ")); flattened != "" {
			return flattened
		}
	}

	return defaultProductDescription
}

// Refresh fetches the catalog and installs the result as the current
// snapshot. Each refresh takes a generation ticket before fetching; a
// response that resolves after a newer refresh already landed is discarded
// so stale responses never overwrite fresher ones.
func (s *CatalogService) Refresh(ctx context.Context) ([]models.Product, bool) {
	gen := atomic.AddUint64(&s.generation, 1)
	products := s.FetchCatalog(ctx)
	healthy := products != nil

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.applied {
		return s.products, s.healthy
	}

	s.applied = gen
	s.products = products
	s.fetchedAt = time.Now()
	s.healthy = healthy
	return products, healthy
}

// Products returns the current snapshot, refreshing it when the cache has
// expired or nothing has been fetched yet. The boolean reports whether the
// snapshot came from a successful fetch; an unhealthy snapshot is always
// empty and should be rendered as the error-with-retry state.
func (s *CatalogService) Products(ctx context.Context) ([]models.Product, bool) {
	s.mu.RLock()
	fresh := s.applied > 0 && time.Since(s.fetchedAt) < s.cacheTTL
	products, healthy := s.products, s.healthy
	s.mu.RUnlock()

	if fresh {
		return products, healthy
	}
	return s.Refresh(ctx)
}

// Product looks up a single product by id in the current snapshot.
func (s *CatalogService) Product(ctx context.Context, id int) (models.Product, bool) {
	products, _ := s.Products(ctx)
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories lists the distinct category tags in the snapshot with their
// product counts, sorted by name.
func (s *CatalogService) Categories(ctx context.Context) []CategoryCount {
	products, _ := s.Products(ctx)

	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories
}

// PriceRange reports the lowest and highest product price in the snapshot,
// used to initialize the storefront's price slider.
func (s *CatalogService) PriceRange(ctx context.Context) (min, max float64, ok bool) {
	products, _ := s.Products(ctx)
	if len(products) == 0 {
		return 0, 0, false
	}

	min, max = products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, true
}

// PartitionByPrice splits products into those within [min, max] and those
// outside it, preserving order. It filters the canonical product data
// directly rather than re-parsing prices out of rendered text.
func (s *CatalogService) PartitionByPrice(products []models.Product, min, max float64) PriceFilterResult {
	result := PriceFilterResult{
		Matching: make([]models.Product, 0, len(products)),
		Dimmed:   make([]models.Product, 0),
	}

	for _, p := range products {
		if p.Price >= min && p.Price <= max {
			result.Matching = append(result.Matching, p)
		} else {
			result.Dimmed = append(result.Dimmed, p)
		}
	}
	return result
}

// Healthy reports whether the last applied fetch succeeded.
func (s *CatalogService) Healthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthy
}

// FetchedAt reports when the current snapshot was installed.
func (s *CatalogService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func (s *CatalogService) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("catalog[%d products, fetched %s]", len(s.products), s.fetchedAt.Format(time.RFC3339))
}
