package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/infrastructure/http/v1/dto"
	"tillbook/internal/infrastructure/images"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service  *product.Service
	images   *images.Store
	activity *activity.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service, imgs *images.Store, act *activity.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service, images: imgs, activity: act}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	id, err := h.service.Create(c.Request.Context(), p, req.Images)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionCreate, "product", id, p.ProductName)
	h.Created(c, id)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	p.ID = id
	if err := h.service.Update(c.Request.Context(), p, req.Images); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "product", id, p.ProductName)
	h.NoContent(c)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "product", id, "")
	h.NoContent(c)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, products)
}

// GetImage handles GET /products/:id/images. It returns the product's
// images as data URLs; pass thumb=1 for thumbnails.
func (h *ProductHandler) GetImage(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	paths, err := h.service.GetImages(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	thumb := c.Query("thumb") == "1"
	urls := make([]string, 0, len(paths))
	for _, path := range paths {
		var url string
		if thumb {
			url, err = h.images.ThumbnailDataURL(path)
		} else {
			url, err = h.images.ReadDataURL(path)
		}
		if err != nil {
			continue
		}
		urls = append(urls, url)
	}
	h.OK(c, urls)
}
