package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product categories. The set is closed; anything else is rejected both by the
// request validator and by the persistence schema.
const (
	CategoryFruit     = "fruit"
	CategoryVegetable = "vegetable"
	CategoryDairy     = "dairy"
)

// Categories lists the accepted categories in display order.
var Categories = []string{CategoryFruit, CategoryVegetable, CategoryDairy}

// IsCategory reports whether c is one of Categories (case-sensitive).
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product is a catalog item. FarmID is a weak back reference to the owning
// farm; it is set only when the product is created under a farm.
type Product struct {
	ID        string    `json:"id"                bson:"_id"            gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"              bson:"name"           gorm:"type:varchar(255);not null"`
	Price     float64   `json:"price"             bson:"price"          gorm:"not null"`
	Category  string    `json:"category"          bson:"category"       gorm:"type:varchar(16);not null;index:idx_products_category"`
	FarmID    *string   `json:"farm_id,omitempty" bson:"farm,omitempty" gorm:"type:char(36);index"`
	CreatedAt time.Time `json:"created_at"        bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at"        bson:"updated_at"     gorm:"index"`

	Farm *Farm `json:"farm,omitempty" bson:"-" gorm:"-"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// Validate applies the product schema rules enforced by every store on save.
func (p *Product) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, FieldError{Path: "name", Message: "Path `name` is required."})
	}
	if p.Price < 0 {
		fields = append(fields, FieldError{
			Path:    "price",
			Message: fmt.Sprintf("Path `price` (%v) is less than minimum allowed value (0).", p.Price),
		})
	}
	switch {
	case p.Category == "":
		fields = append(fields, FieldError{Path: "category", Message: "Path `category` is required."})
	case !IsCategory(p.Category):
		fields = append(fields, FieldError{
			Path:    "category",
			Message: fmt.Sprintf("`%s` is not a valid enum value for path `category`.", p.Category),
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Entity: "Product", Fields: fields}
	}
	return nil
}

// BeforeSave runs schema validation on every GORM create/save.
func (p *Product) BeforeSave(*gorm.DB) error { return p.Validate() }

// ProductInput carries the mutable product fields accepted from clients.
type ProductInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Apply copies the input fields onto p.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Price = in.Price
	p.Category = in.Category
}
