package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plant is a physical catalog item with finite stock.
type Plant struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Stock       int                `json:"stock" bson:"stock"`
	Status      string             `json:"status" bson:"status"` // "available" or "outofstock"
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DesignService is an optional priced extra declared by a garden design.
type DesignService struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// GardenDesign is a design package with optional add-on services.
type GardenDesign struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Status      string             `json:"status" bson:"status"` // "available" or "unavailable"
	Services    []DesignService    `json:"services,omitempty" bson:"services,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// MaintenanceOption is a priced tier embedded in a maintenance package.
// OptionID is a small index within the package, not a database id.
type MaintenanceOption struct {
	OptionID int     `json:"optionId" bson:"optionId"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
}

// MaintenancePackage groups bookable maintenance options under one title.
type MaintenancePackage struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Status      string              `json:"status" bson:"status"` // "active" or "inactive"
	Options     []MaintenanceOption `json:"options" bson:"options"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time           `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time           `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
