package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetKind is the category of an owned asset.
type AssetKind string

const (
	Car   AssetKind = "Car"
	House AssetKind = "House"
	Other AssetKind = "Other"
)

// Condition degrades with age.
type Condition string

const (
	Good Condition = "Good"
	Fair Condition = "Fair"
	Poor Condition = "Poor"
)

// Asset is something the player owns that has a market value.
type Asset struct {
	ID            uuid.UUID       `json:"id"`
	Kind          AssetKind       `json:"kind"`
	Name          string          `json:"name"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Condition     Condition       `json:"condition"`
	AgeYears      int             `json:"age_years"`
}

// NewAsset creates a freshly purchased asset in Good condition.
func NewAsset(kind AssetKind, name string, value decimal.Decimal) *Asset {
	return &Asset{
		ID:            uuid.New(),
		Kind:          kind,
		Name:          name,
		PurchaseValue: value,
		CurrentValue:  value,
		Condition:     Good,
	}
}

// Repair restores the asset to Good condition.
func (a *Asset) Repair() { a.Condition = Good }
