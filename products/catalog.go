// Package products is the catalog admins maintain and shoppers browse. It is
// stored as one JSON list under kvstore.ProductsKey, newest first.
package products

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"Storefront/kvstore"
	"Storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidProduct  = errors.New("provide a valid product name and price")
	ErrProductNotFound = errors.New("product not found")
)

// AllCategories is the category filter that matches every product.
const AllCategories = "All"

const (
	DefaultPageSize = 8
	MaxPageSize     = 50
)

// Sort orders accepted by List. Anything else keeps catalog order.
const (
	SortName      = "name"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
	SortRating    = "rating"
	SortStock     = "stock"
)

var validate = validator.New()

// Draft is the admin input for a new product.
type Draft struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Available   *bool    `json:"available"`
}

type Query struct {
	Search   string
	Category string
	Sort     string
	Page     int
	PageSize int
}

type Catalog struct {
	kv     kvstore.Store
	logger zerolog.Logger
}

func NewCatalog(kv kvstore.Store, logger zerolog.Logger) *Catalog {
	return &Catalog{
		kv:     kv,
		logger: logger.With().Str("component", "products").Logger(),
	}
}

// All returns the stored catalog; an unreadable list reads as empty.
func (c *Catalog) All() []models.Product {
	var list []models.Product
	if _, err := kvstore.ReadJSON(c.kv, kvstore.ProductsKey, &list); err != nil {
		c.logger.Warn().Err(err).Msg("Product list unreadable, treating as empty")
		return []models.Product{}
	}
	if list == nil {
		list = []models.Product{}
	}
	return list
}

func (c *Catalog) Get(id models.ProductID) (models.Product, error) {
	for _, p := range c.All() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Categories lists "All" followed by each distinct category in catalog order.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range c.All() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// List filters by category and a case-insensitive search over name,
// description and category, sorts, then returns the requested page.
func (c *Catalog) List(q Query) models.Page[models.Product] {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	list := make([]models.Product, 0)
	for _, p := range c.All() {
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		list = append(list, p)
	}

	if less := sortBy(q.Sort, list); less != nil {
		sort.SliceStable(list, less)
	}

	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return models.Paginate(list, q.Page, size)
}

func matches(p models.Product, search string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func sortBy(key string, list []models.Product) func(i, j int) bool {
	num := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	stock := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	switch key {
	case SortName:
		return func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) }
	case SortPriceAsc:
		return func(i, j int) bool { return num(list[i].Price) < num(list[j].Price) }
	case SortPriceDesc:
		return func(i, j int) bool { return num(list[i].Price) > num(list[j].Price) }
	case SortRating:
		return func(i, j int) bool { return num(list[i].Rating) > num(list[j].Rating) }
	case SortStock:
		return func(i, j int) bool { return stock(list[i].Stock) > stock(list[j].Stock) }
	default:
		return nil
	}
}

// Create validates the draft, assigns a fresh "p_" id and puts the product
// at the front of the catalog. Availability defaults to true.
func (c *Catalog) Create(d Draft) (models.Product, error) {
	d.Name = strings.TrimSpace(d.Name)
	if err := validate.Struct(d); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			return models.Product{}, ErrInvalidProduct
		}
		return models.Product{}, fmt.Errorf("validate product: %w", err)
	}

	list := c.All()
	price := *d.Price
	stock := 0
	if d.Stock != nil {
		stock = *d.Stock
	}
	available := true
	if d.Available != nil {
		available = *d.Available
	}
	p := models.Product{
		ID:          c.newID(list),
		Name:        d.Name,
		Category:    strings.TrimSpace(d.Category),
		Brand:       strings.TrimSpace(d.Brand),
		Price:       &price,
		Image:       strings.TrimSpace(d.Image),
		Description: strings.TrimSpace(d.Description),
		Stock:       &stock,
		Available:   &available,
	}

	if err := c.save(append([]models.Product{p}, list...)); err != nil {
		return models.Product{}, err
	}
	c.logger.Info().Str("product_id", string(p.ID)).Str("name", p.Name).Msg("Product added")
	return p, nil
}

// ToggleAvailability flips the available flag and returns the updated product.
func (c *Catalog) ToggleAvailability(id models.ProductID) (models.Product, error) {
	list := c.All()
	for i := range list {
		if list[i].ID != id {
			continue
		}
		available := !list[i].IsAvailable()
		list[i].Available = &available
		if err := c.save(list); err != nil {
			return models.Product{}, err
		}
		c.logger.Info().Str("product_id", string(id)).Bool("available", available).Msg("Product availability changed")
		return list[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

func (c *Catalog) Delete(id models.ProductID) error {
	list := c.All()
	kept := make([]models.Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return ErrProductNotFound
	}
	if err := c.save(kept); err != nil {
		return err
	}
	c.logger.Info().Str("product_id", string(id)).Msg("Product deleted")
	return nil
}

func (c *Catalog) newID(existing []models.Product) models.ProductID {
	taken := make(map[models.ProductID]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}
	for {
		id := models.ProductID("p_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:7])
		if !taken[id] {
			return id
		}
	}
}

func (c *Catalog) save(list []models.Product) error {
	if err := kvstore.WriteJSON(c.kv, kvstore.ProductsKey, list); err != nil {
		c.logger.Error().Err(err).Msg("Error saving products")
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}
