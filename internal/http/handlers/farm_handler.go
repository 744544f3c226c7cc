// Farm HTTP handlers.
//
// This file exposes the farm pages:
//   - GET    /farms                       (list)
//   - GET    /farms/new                   (creation form)
//   - POST   /farms                       (create, 302 → /farms)
//   - GET    /farms/{id}                  (farm with its products)
//   - DELETE /farms/{id}                  (delete with cascade, 302 → /farms)
//   - GET    /farms/{id}/products/new     (product form scoped to the farm)
//   - POST   /farms/{id}/products         (create and link, 302 → /farms/{id})
//
// Farm creation and nested product creation are not checked by the request
// validator; the store's schema rules still apply to both.
package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/validation"
)

//
// DTOs
//

// CreateFarmRequest is the farm creation payload (form or JSON).
type CreateFarmRequest struct {
	Name  string `form:"name"  json:"name"  example:"Green Acres"`
	City  string `form:"city"  json:"city"  example:"Pawnee"`
	Email string `form:"email" json:"email" example:"hello@greenacres.example"`

	// Products optionally seeds the farm's product id list.
	Products []string `form:"products" json:"products"`
}

// CreateProductRequest is the product payload (form or JSON) for the product
// routes. Price accepts numeric strings.
type CreateProductRequest struct {
	Name     string  `form:"name"     json:"name"     example:"Kale"`
	Price    float64 `form:"price"    json:"price"    example:"2.5"`
	Category string  `form:"category" json:"category" example:"vegetable" enums:"fruit,vegetable,dairy"`
}

//
// Helpers
//

// str reads a payload value as a trimmed string; non-strings are formatted.
func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// strs reads key as a list of non-blank strings: a JSON array, a single
// value, or every repeated value of a urlencoded form field.
func strs(c *gin.Context, m map[string]any, key string) []string {
	var raw []string
	switch v := m[key].(type) {
	case nil:
		return nil
	case []any:
		for _, e := range v {
			if e != nil {
				raw = append(raw, fmt.Sprint(e))
			}
		}
	case string:
		raw = c.Request.PostForm[key]
		if len(raw) == 0 {
			raw = []string{v}
		}
	default:
		raw = []string{fmt.Sprint(v)}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// looseProductInput converts a payload without request validation. Only a
// price that cannot be read as a number is rejected here, the way the store
// rejects an uncastable value; everything else is left to the store's rules.
func looseProductInput(m map[string]any) (domain.ProductInput, error) {
	in := domain.ProductInput{
		Name:     str(m, "name"),
		Category: str(m, "category"),
	}
	raw, ok := m["price"]
	if !ok || raw == nil || raw == "" {
		return in, &domain.ValidationError{Entity: "Product", Fields: []domain.FieldError{
			{Path: "price", Message: "Path `price` is required."},
		}}
	}
	price, ok := validation.Number(raw)
	if !ok {
		return in, &domain.ValidationError{Entity: "Product", Fields: []domain.FieldError{
			{Path: "price", Message: fmt.Sprintf("Cast to Number failed for value %q at path `price`", fmt.Sprint(raw))},
		}}
	}
	in.Price = price
	return in, nil
}

//
// Handlers
//

// ListFarms godoc
// @ID          listFarms
// @Summary     List farms
// @Description Renders every farm in insertion order. JSON with Accept: application/json.
// @Tags        Farms
// @Produce     html,json
// @Success     200  {object}  handlers.FarmListView
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /farms [get]
func (h *Handlers) ListFarms(c *gin.Context) {
	farms, err := h.farms.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "farms/index", FarmListView{Farms: farms})
}

// NewFarm godoc
// @ID          newFarmForm
// @Summary     Farm creation form
// @Tags        Farms
// @Produce     html
// @Success     200  {string}  string  "HTML form"
// @Router      /farms/new [get]
func (h *Handlers) NewFarm(c *gin.Context) {
	render(c, "farms/new", gin.H{})
}

// CreateFarm godoc
// @ID          createFarm
// @Summary     Create a farm
// @Description Persists a farm and redirects to the farm list. The product list is empty unless product ids are supplied.
// @Tags        Farms
// @Accept      x-www-form-urlencoded,json
// @Param       Idempotency-Key  header  string                     false  "Replays the first redirect for repeated submits"
// @Param       body             body    handlers.CreateFarmRequest  true   "Farm"
// @Success     302  {string}  string  "Location: /farms"
// @Failure     400  {string}  string  "Validation Failed..."
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /farms [post]
func (h *Handlers) CreateFarm(c *gin.Context) {
	body, err := payload(c)
	if err != nil {
		fail(c, bodyError(err))
		return
	}
	farm := &domain.Farm{
		Name:       str(body, "name"),
		City:       str(body, "city"),
		Email:      str(body, "email"),
		ProductIDs: strs(c, body, "products"),
	}
	if _, err := h.farms.Create(c.Request.Context(), farm); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/farms")
}

// ShowFarm godoc
// @ID          showFarm
// @Summary     Show a farm with its products
// @Description A missing farm renders the page without a farm (200), not a 404.
// @Tags        Farms
// @Produce     html,json
// @Param       id   path      string  true  "Farm ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.FarmView
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /farms/{id} [get]
func (h *Handlers) ShowFarm(c *gin.Context) {
	farm, err := h.farms.GetWithProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "farms/show", FarmView{Farm: farm})
}

// DeleteFarm godoc
// @ID          deleteFarm
// @Summary     Delete a farm and its products
// @Description Deletes the farm, then every product listed on it. Missing farms are a no-op.
// @Tags        Farms
// @Param       id   path      string  true  "Farm ID (UUID)"  format(uuid)
// @Success     302  {string}  string  "Location: /farms"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /farms/{id} [delete]
func (h *Handlers) DeleteFarm(c *gin.Context) {
	if err := h.farms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/farms")
}

// NewFarmProduct godoc
// @ID          newFarmProductForm
// @Summary     Product form scoped to a farm
// @Tags        Farms
// @Produce     html,json
// @Param       id   path      string  true  "Farm ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ProductFormView
// @Failure     404  {string}  string  "Farm not found"
// @Router      /farms/{id}/products/new [get]
func (h *Handlers) NewFarmProduct(c *gin.Context) {
	farm, err := h.farms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "products/new", ProductFormView{Farm: farm, Categories: domain.Categories})
}

// CreateFarmProduct godoc
// @ID          createFarmProduct
// @Summary     Create a product under a farm
// @Description Appends the new product to the farm's list and links it back. The farm is written before the product.
// @Tags        Farms
// @Accept      x-www-form-urlencoded,json
// @Param       id               path    string                        true   "Farm ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string                        false  "Replays the first redirect for repeated submits"
// @Param       body             body    handlers.CreateProductRequest  true   "Product"
// @Success     302  {string}  string  "Location: /farms/{id}"
// @Failure     400  {string}  string  "Validation Failed..."
// @Failure     404  {string}  string  "Farm not found"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /farms/{id}/products [post]
func (h *Handlers) CreateFarmProduct(c *gin.Context) {
	body, err := payload(c)
	if err != nil {
		fail(c, bodyError(err))
		return
	}
	in, err := looseProductInput(body)
	if err != nil {
		fail(c, err)
		return
	}
	id := c.Param("id")
	if _, err := h.farms.AppendProduct(c.Request.Context(), id, in); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/farms/"+id)
}
