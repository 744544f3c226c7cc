// Package domain defines the persistence models for farms and products.
// The types are mapped with GORM for the relational stores and carry bson
// tags for the document store, so both backends share one shape.
package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Farm is the owning side of the farm/product relationship. ProductIDs is the
// authoritative, ordered list of the products the farm holds.
//
// Fields:
//   - ID: UUID primary key (char(36)), generated on create.
//   - Name, Email: required.
//   - City: optional.
//   - ProductIDs: ordered product references; stored as a JSON column in SQL
//     and as an array in the document store.
//   - Products: resolved entities, populated only by the "with products" reads.
type Farm struct {
	ID         string    `json:"id"             bson:"_id"            gorm:"type:char(36);primaryKey"`
	Name       string    `json:"name"           bson:"name"           gorm:"type:varchar(255);not null"`
	City       string    `json:"city,omitempty" bson:"city,omitempty" gorm:"type:varchar(255)"`
	Email      string    `json:"email"          bson:"email"          gorm:"type:varchar(255);not null"`
	ProductIDs []string  `json:"product_ids"    bson:"products"       gorm:"column:product_ids;type:text;serializer:json"`
	CreatedAt  time.Time `json:"created_at"     bson:"created_at"     gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"     bson:"updated_at"`

	Products []Product `json:"products,omitempty" bson:"-" gorm:"-"`
}

// TableName returns the database table name for Farm.
func (Farm) TableName() string { return "farms" }

// HasProduct reports whether id is already in the farm's product sequence.
func (f *Farm) HasProduct(id string) bool {
	for _, p := range f.ProductIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AddProduct appends id to the product sequence.
func (f *Farm) AddProduct(id string) {
	f.ProductIDs = append(f.ProductIDs, id)
}

// Validate applies the farm schema rules enforced by every store on save.
func (f *Farm) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(f.Name) == "" {
		fields = append(fields, FieldError{Path: "name", Message: "Farm must have a name property"})
	}
	if strings.TrimSpace(f.Email) == "" {
		fields = append(fields, FieldError{Path: "email", Message: "Email required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Entity: "Farm", Fields: fields}
	}
	return nil
}

// BeforeSave runs schema validation on every GORM create/save.
func (f *Farm) BeforeSave(*gorm.DB) error {
	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	return f.Validate()
}
