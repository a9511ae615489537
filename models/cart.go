package models

import "time"

// ItemKind classifies what a cart line denotes. The set is closed.
type ItemKind string

const (
	KindPlant       ItemKind = "plant"
	KindDesign      ItemKind = "design"
	KindMaintenance ItemKind = "maintenance"
)

func (k ItemKind) Valid() bool {
	switch k {
	case KindPlant, KindDesign, KindMaintenance:
		return true
	}
	return false
}

// CartAddOn is a design add-on service accepted onto a cart line.
type CartAddOn struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// CartLine is one purchasable entry in a cart. ItemID is kept as a hex
// string so historic documents with broken refs still decode.
type CartLine struct {
	Kind      ItemKind    `json:"kind" bson:"kind"`
	ItemID    string      `json:"itemId" bson:"itemId"`
	OptionID  *int        `json:"optionId,omitempty" bson:"optionId,omitempty"` // maintenance only
	Quantity  int         `json:"quantity" bson:"quantity"`
	UnitPrice float64     `json:"unitPrice" bson:"unitPrice"` // snapshot, includes add-ons for designs
	Name      string      `json:"name" bson:"name"`
	ImageURL  string      `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Stock     int         `json:"stock,omitempty" bson:"stock,omitempty"` // plants only, last-known
	Size      string      `json:"size,omitempty" bson:"size,omitempty"`   // maintenance only
	AddOns    []CartAddOn `json:"addOns,omitempty" bson:"addOns,omitempty"`
	AddedAt   time.Time   `json:"addedAt" bson:"addedAt"`
}

// Cart holds one user's line items. One document per user.
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	Lines     []CartLine `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
