package handlers

import "github.com/tbourn/farmstand/internal/domain"

// View models. Each page template receives one of these; JSON clients get the
// same value serialized.

// FarmListView is rendered by farms/index.
type FarmListView struct {
	Farms []domain.Farm `json:"farms"`
}

// FarmView is rendered by farms/show. Farm is nil when the id matched nothing.
type FarmView struct {
	Farm *domain.Farm `json:"farm"`
}

// ProductListView is rendered by products/index. Category is the page label:
// the requested category, or "All".
type ProductListView struct {
	Products []domain.Product `json:"products"`
	Category string           `json:"category"`
}

// ProductView is rendered by products/show.
type ProductView struct {
	Product *domain.Product `json:"product"`
}

// ProductFormView is rendered by products/new and products/edit. Farm is set
// on the farm-scoped form, Product on the edit form.
type ProductFormView struct {
	Farm       *domain.Farm    `json:"farm,omitempty"`
	Product    *domain.Product `json:"product,omitempty"`
	Categories []string        `json:"categories"`
}
