package catalog

import (
	"context"
	"errors"
	"fmt"

	"verdia/db"
	"verdia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("catalog: item not found")
	ErrInvalidRef = errors.New("catalog: invalid item reference")
)

// Resolved is the current catalog truth for one item reference. It is a
// read-only snapshot; resolving never mutates anything.
type Resolved struct {
	Price     float64
	Name      string
	ImageURL  string
	Available bool
	Stock     int                    // plants only
	AddOns    []models.DesignService // designs only
}

// Lookup resolves item references against the catalog collections.
type Lookup struct{}

func NewLookup() *Lookup { return &Lookup{} }

// Resolve fetches the catalog entity behind (kind, itemRef, optionRef) and
// returns the fields the cart engine needs to accept or reject a mutation.
func (l *Lookup) Resolve(ctx context.Context, kind models.ItemKind, itemRef string, optionRef *int) (*Resolved, error) {
	oid, err := primitive.ObjectIDFromHex(itemRef)
	if err != nil {
		return nil, ErrInvalidRef
	}

	switch kind {
	case models.KindPlant:
		var plant models.Plant
		err := db.PlantsCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plant)
		if err != nil {
			return nil, lookupErr(err)
		}
		return &Resolved{
			Price:     plant.Price,
			Name:      plant.Name,
			ImageURL:  plant.ImageURL,
			Available: plant.Status != "outofstock",
			Stock:     plant.Stock,
		}, nil

	case models.KindDesign:
		var design models.GardenDesign
		err := db.DesignsCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&design)
		if err != nil {
			return nil, lookupErr(err)
		}
		return &Resolved{
			Price:     design.Price,
			Name:      design.Name,
			ImageURL:  design.ImageURL,
			Available: design.Status == "available",
			AddOns:    design.Services,
		}, nil

	case models.KindMaintenance:
		if optionRef == nil {
			return nil, ErrInvalidRef
		}
		var pkg models.MaintenancePackage
		err := db.MaintenanceCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&pkg)
		if err != nil {
			return nil, lookupErr(err)
		}
		opt, ok := optionByID(pkg.Options, *optionRef)
		if !ok {
			return nil, ErrNotFound
		}
		return &Resolved{
			Price:     opt.Price,
			Name:      composeOptionName(pkg.Title, opt.Name),
			Available: pkg.Status == "active",
		}, nil
	}

	return nil, ErrInvalidRef
}

func lookupErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// optionByID locates a sub-option within a maintenance package's embedded
// options list.
func optionByID(opts []models.MaintenanceOption, id int) (models.MaintenanceOption, bool) {
	for _, opt := range opts {
		if opt.OptionID == id {
			return opt, true
		}
	}
	return models.MaintenanceOption{}, false
}

func composeOptionName(title, option string) string {
	return fmt.Sprintf("%s - %s", title, option)
}
