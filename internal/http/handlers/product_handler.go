// Product HTTP handlers.
//
// This file exposes the product pages:
//   - GET    /products              (list, ?category= filter, weak ETag)
//   - GET    /products/new          (creation form)
//   - GET    /product/new           (always 404, points at /products/new)
//   - POST   /products              (validate + create, 302 → /products)
//   - GET    /products/{id}         (product with its farm)
//   - GET    /products/{id}/edit    (edit form)
//   - PUT    /products/{id}         (validate + update, 302 → /products/{id})
//   - DELETE /products/{id}         (delete, 302 → /products)
//
// Create and update run the request validator before touching the store.
// Deleting a product leaves its id on the owning farm's list; the farm page
// skips ids that no longer resolve.
package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/services"
	"github.com/tbourn/farmstand/internal/validation"
)

// validProductInput reads the body and runs the request validator on it.
func validProductInput(c *gin.Context) (domain.ProductInput, error) {
	body, err := payload(c)
	if err != nil {
		return domain.ProductInput{}, bodyError(err)
	}
	return validation.Product(body)
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List products
// @Description Lists products, optionally only one category (exact match). The page label is the category, or "All". Supports weak ETag via If-None-Match and may return 304.
// @Tags        Products
// @Produce     html,json
// @Param       category       query   string  false  "Exact category"              Enums(fruit, vegetable, dairy)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.ProductListView
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	// ETag pre-check (best effort).
	count, maxTS, err := h.products.Stats(ctx, category)
	if err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"products:%s:%s:%d:%d"`, url.QueryEscape(category), format(c), count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Header("Vary", "Accept")
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.products.List(ctx, category)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "products/index", ProductListView{
		Products: items,
		Category: services.CategoryLabel(category),
	})
}

// NewProduct godoc
// @ID          newProductForm
// @Summary     Product creation form
// @Tags        Products
// @Produce     html,json
// @Success     200  {object}  handlers.ProductFormView
// @Router      /products/new [get]
func (h *Handlers) NewProduct(c *gin.Context) {
	render(c, "products/new", ProductFormView{Categories: domain.Categories})
}

// ProductPageMissing godoc
// @ID          productPageMissing
// @Summary     Mistyped product form path
// @Tags        Products
// @Failure     404  {string}  string  "Page Does Not Exist, try products/new"
// @Router      /product/new [get]
func (h *Handlers) ProductPageMissing(c *gin.Context) {
	fail(c, apperr.NotFound(MsgPageDoesNotExist))
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Description Validates the payload and persists a product with no farm.
// @Tags        Products
// @Accept      x-www-form-urlencoded,json
// @Param       Idempotency-Key  header  string                        false  "Replays the first redirect for repeated submits"
// @Param       body             body    handlers.CreateProductRequest  true   "Product"
// @Success     302  {string}  string  "Location: /products"
// @Failure     400  {string}  string  "\"price\" must be greater than or equal to 0"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	in, err := validProductInput(c)
	if err != nil {
		fail(c, err)
		return
	}
	if _, err := h.products.Create(c.Request.Context(), in); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/products")
}

// ShowProduct godoc
// @ID          showProduct
// @Summary     Show a product with its farm
// @Tags        Products
// @Produce     html,json
// @Param       id   path      string  true  "Product ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ProductView
// @Failure     404  {string}  string  "Product not found"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /products/{id} [get]
func (h *Handlers) ShowProduct(c *gin.Context) {
	p, err := h.products.GetWithFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "products/show", ProductView{Product: p})
}

// EditProduct godoc
// @ID          editProductForm
// @Summary     Product edit form
// @Tags        Products
// @Produce     html,json
// @Param       id   path      string  true  "Product ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ProductFormView
// @Failure     404  {string}  string  "Product not found"
// @Router      /products/{id}/edit [get]
func (h *Handlers) EditProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, "products/edit", ProductFormView{Product: p, Categories: domain.Categories})
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product
// @Description Validates the payload, applies it and redirects to the product page. HTML forms reach this route with POST and _method=PUT.
// @Tags        Products
// @Accept      x-www-form-urlencoded,json
// @Param       id    path    string                        true  "Product ID (UUID)"  format(uuid)
// @Param       body  body    handlers.CreateProductRequest  true  "Product"
// @Success     302  {string}  string  "Location: /products/{id}"
// @Failure     400  {string}  string  "\"category\" must be one of [fruit, vegetable, dairy]"
// @Failure     404  {string}  string  "Product not found"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /products/{id} [put]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	in, err := validProductInput(c)
	if err != nil {
		fail(c, err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/products/"+p.ID)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product
// @Description Removes the product. The owning farm's list is not updated.
// @Tags        Products
// @Param       id   path      string  true  "Product ID (UUID)"  format(uuid)
// @Success     302  {string}  string  "Location: /products"
// @Failure     500  {string}  string  "Something went wrong"
// @Router      /products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/products")
}
