package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"verdia/catalog"
	"verdia/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolver supplies current catalog truth for an item reference.
type Resolver interface {
	Resolve(ctx context.Context, kind models.ItemKind, itemRef string, optionRef *int) (*catalog.Resolved, error)
}

// Engine reconciles cart mutations against the catalog and the store. It
// holds no cart state between requests; every operation re-fetches.
//
// Concurrent requests against the same user's cart are not coordinated:
// the whole-document read-modify-write means last write wins. Inherited
// behavior, kept as-is.
type Engine struct {
	Store   Store
	Catalog Resolver
}

func NewEngine(store Store, resolver Resolver) *Engine {
	return &Engine{Store: store, Catalog: resolver}
}

// Request carries one cart mutation. Add and UpdateQuantity share the
// shape; Remove ignores Quantity, AddOns and Size.
type Request struct {
	Kind     models.ItemKind `json:"kind"`
	ItemID   string          `json:"itemId"`
	OptionID *int            `json:"optionId,omitempty"`
	Quantity int             `json:"quantity"`
	AddOns   []string        `json:"addOns,omitempty"`
	Size     string          `json:"size,omitempty"`
	ClearAll bool            `json:"clearAll,omitempty"`
}

// Add validates the request, prices the line, and merges it into the
// user's cart, creating the cart on first add.
func (e *Engine) Add(ctx context.Context, userID string, req Request) (*models.Cart, error) {
	if err := validateRequest(userID, req); err != nil {
		return nil, err
	}

	res, err := e.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkAvailability(req, res); err != nil {
		return nil, err
	}

	line, err := buildLine(req, res)
	if err != nil {
		return nil, err
	}

	cart, err := e.Store.Fetch(ctx, userID)
	if err != nil {
		log.Printf("cart: fetch failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
	}

	if i := findLine(cart.Lines, req.Kind, req.ItemID, req.OptionID); i >= 0 {
		// Merge: accumulate quantity, refresh every snapshot field with
		// the freshly resolved values.
		merged := line
		merged.Quantity = cart.Lines[i].Quantity + req.Quantity
		merged.AddedAt = cart.Lines[i].AddedAt
		cart.Lines[i] = merged
	} else {
		cart.Lines = append(cart.Lines, line)
	}

	// The pre-merge check passed for the requested quantity alone; the
	// merged total may still exceed stock.
	if req.Kind == models.KindPlant {
		i := findLine(cart.Lines, req.Kind, req.ItemID, nil)
		if cart.Lines[i].Quantity > res.Stock {
			return nil, unavailablef("insufficient stock for %s: %d available", res.Name, res.Stock)
		}
	}

	if err := e.Store.Replace(ctx, cart); err != nil {
		log.Printf("cart: replace failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	return cart, nil
}

// List returns the user's cart lines. An absent cart is an empty list,
// not an error. Lines whose stored item reference no longer parses are
// dropped rather than failing the read; the drop count is reported so
// corruption stays visible.
func (e *Engine) List(ctx context.Context, userID string) ([]models.CartLine, int, error) {
	if userID == "" {
		return nil, 0, invalidf("userId is required")
	}

	cart, err := e.Store.Fetch(ctx, userID)
	if err != nil {
		log.Printf("cart: fetch failed for user %s: %v", userID, err)
		return nil, 0, storageErr()
	}
	if cart == nil {
		return []models.CartLine{}, 0, nil
	}

	lines := make([]models.CartLine, 0, len(cart.Lines))
	skipped := 0
	for _, l := range cart.Lines {
		if _, err := primitive.ObjectIDFromHex(l.ItemID); err != nil || !l.Kind.Valid() {
			skipped++
			log.Printf("cart: skipping corrupt line for user %s (kind=%q itemId=%q)", userID, l.Kind, l.ItemID)
			continue
		}
		lines = append(lines, l)
	}
	return lines, skipped, nil
}

// UpdateQuantity replaces a matched line's quantity outright after the
// same validation and availability checks as Add.
func (e *Engine) UpdateQuantity(ctx context.Context, userID string, req Request) (*models.Cart, error) {
	if err := validateRequest(userID, req); err != nil {
		return nil, err
	}

	res, err := e.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkAvailability(req, res); err != nil {
		return nil, err
	}

	line, err := buildLine(req, res)
	if err != nil {
		return nil, err
	}

	cart, err := e.Store.Fetch(ctx, userID)
	if err != nil {
		log.Printf("cart: fetch failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	if cart == nil {
		return nil, notFoundf("cart not found")
	}

	i := findLine(cart.Lines, req.Kind, req.ItemID, req.OptionID)
	if i < 0 {
		return nil, notFoundf("item not found in cart")
	}
	line.AddedAt = cart.Lines[i].AddedAt
	cart.Lines[i] = line

	if err := e.Store.Replace(ctx, cart); err != nil {
		log.Printf("cart: replace failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	return cart, nil
}

// Remove deletes exactly one matching line item.
func (e *Engine) Remove(ctx context.Context, userID string, req Request) (*models.Cart, error) {
	if userID == "" {
		return nil, invalidf("userId is required")
	}
	if !req.Kind.Valid() {
		return nil, invalidf("invalid item kind: %q", req.Kind)
	}
	if _, err := primitive.ObjectIDFromHex(req.ItemID); err != nil {
		return nil, invalidf("invalid item reference")
	}
	if req.Kind == models.KindMaintenance && req.OptionID == nil {
		return nil, invalidf("optionId is required for maintenance items")
	}

	cart, err := e.Store.Fetch(ctx, userID)
	if err != nil {
		log.Printf("cart: fetch failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	if cart == nil {
		return nil, notFoundf("cart not found")
	}

	i := findLine(cart.Lines, req.Kind, req.ItemID, req.OptionID)
	if i < 0 {
		return nil, notFoundf("item not found in cart")
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := e.Store.Replace(ctx, cart); err != nil {
		log.Printf("cart: replace failed for user %s: %v", userID, err)
		return nil, storageErr()
	}
	return cart, nil
}

// Clear deletes the whole cart document. Clearing an absent cart is a
// successful no-op; the bool reports whether anything was there.
func (e *Engine) Clear(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, invalidf("userId is required")
	}

	deleted, err := e.Store.Delete(ctx, userID)
	if err != nil {
		log.Printf("cart: clear failed for user %s: %v", userID, err)
		return false, storageErr()
	}
	return deleted, nil
}

// resolve maps catalog errors into the engine taxonomy.
func (e *Engine) resolve(ctx context.Context, req Request) (*catalog.Resolved, error) {
	res, err := e.Catalog.Resolve(ctx, req.Kind, req.ItemID, req.OptionID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return nil, notFoundf("%s not found", req.Kind)
		case errors.Is(err, catalog.ErrInvalidRef):
			return nil, invalidf("invalid item reference")
		default:
			log.Printf("cart: catalog lookup failed (kind=%s itemId=%s): %v", req.Kind, req.ItemID, err)
			return nil, storageErr()
		}
	}
	return res, nil
}

// validateRequest rejects malformed requests before any catalog or store
// access happens.
func validateRequest(userID string, req Request) error {
	if userID == "" {
		return invalidf("userId is required")
	}
	if !req.Kind.Valid() {
		return invalidf("invalid item kind: %q", req.Kind)
	}
	if req.ItemID == "" {
		return invalidf("itemId is required")
	}
	if _, err := primitive.ObjectIDFromHex(req.ItemID); err != nil {
		return invalidf("invalid item reference")
	}
	if req.Quantity < 1 {
		return invalidf("quantity must be a positive integer")
	}
	if req.Kind == models.KindMaintenance {
		if req.OptionID == nil {
			return invalidf("optionId is required for maintenance items")
		}
		if req.Size == "" {
			return invalidf("size is required for maintenance items")
		}
	}
	return nil
}

// checkAvailability applies the kind-specific business rules after the
// catalog has been consulted.
func checkAvailability(req Request, res *catalog.Resolved) error {
	switch req.Kind {
	case models.KindPlant:
		if !res.Available {
			return unavailablef("%s is out of stock", res.Name)
		}
		if res.Stock < req.Quantity {
			return unavailablef("insufficient stock for %s: %d available", res.Name, res.Stock)
		}
	case models.KindDesign:
		if !res.Available {
			return unavailablef("%s is not available", res.Name)
		}
	case models.KindMaintenance:
		if !res.Available {
			return unavailablef("%s is inactive", res.Name)
		}
	}
	return nil
}

// buildLine prices and shapes a fresh line from resolved catalog data.
// For designs every requested add-on must exist in the design's declared
// set; one unknown name rejects the whole request.
func buildLine(req Request, res *catalog.Resolved) (models.CartLine, error) {
	line := models.CartLine{
		Kind:      req.Kind,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		UnitPrice: res.Price,
		Name:      res.Name,
		ImageURL:  res.ImageURL,
		AddedAt:   time.Now(),
	}

	switch req.Kind {
	case models.KindPlant:
		line.Stock = res.Stock

	case models.KindDesign:
		valid := make(map[string]float64, len(res.AddOns))
		for _, s := range res.AddOns {
			valid[s.Name] = s.Price
		}
		for _, name := range req.AddOns {
			price, ok := valid[name]
			if !ok {
				return models.CartLine{}, invalidf("invalid add-on service: %s", name)
			}
			line.UnitPrice += price
			line.AddOns = append(line.AddOns, models.CartAddOn{Name: name, Price: price})
		}

	case models.KindMaintenance:
		line.OptionID = req.OptionID
		line.Size = req.Size
	}

	return line, nil
}

// findLine matches on (kind, itemRef) and, for maintenance only, the
// option reference. Returns -1 when no line matches.
func findLine(lines []models.CartLine, kind models.ItemKind, itemID string, optionID *int) int {
	for i, l := range lines {
		if l.Kind != kind || l.ItemID != itemID {
			continue
		}
		if kind == models.KindMaintenance {
			if l.OptionID == nil || optionID == nil || *l.OptionID != *optionID {
				continue
			}
		}
		return i
	}
	return -1
}
