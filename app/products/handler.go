package products

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/estoqueapp/estoque-api/models"
)

// Product is the wire representation; prices go out as plain numbers.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	CategoryID  *uint     `json:"category_id"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	MinStock    int       `json:"min_stock"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type ListResponse struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ProductProvider interface {
	List(page, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

// ImageStore persists uploaded product images. Remove is best-effort
// and never fails.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string)
}

type ProductHandler struct {
	repo   ProductProvider
	images ImageStore
}

func NewProductHandler(r ProductProvider, images ImageStore) *ProductHandler {
	return &ProductHandler{
		repo:   r,
		images: images,
	}
}

func (h *ProductHandler) HandleList(c *gin.Context) {
	page := 1
	limit := 10

	if pStr := c.Query("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = p
		}
	}
	if lStr := c.Query("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	filters := models.ProductFilters{
		Search:   c.Query("search"),
		LowStock: c.Query("low_stock") == "true",
	}
	if cStr := c.Query("category_id"); cStr != "" {
		if id, err := strconv.ParseUint(cStr, 10, 32); err == nil {
			cid := uint(id)
			filters.CategoryID = &cid
		}
	}

	res, total, err := h.repo.List(page, limit, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	data := make([]Product, len(res))
	for i, p := range res {
		data[i] = toResponse(&p)
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	c.JSON(http.StatusOK, ListResponse{
		Data: data,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	})
}

func (h *ProductHandler) HandleCreate(c *gin.Context) {
	form, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		if image, err = h.images.Save(file); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return
		}
	}

	product := &models.Product{
		Name:        form.name,
		CategoryID:  form.categoryID,
		Quantity:    form.quantity,
		Price:       form.price,
		MinStock:    form.minStock,
		Description: form.description,
		Image:       image,
	}
	if err := h.repo.Create(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(product))
}

func (h *ProductHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	existing, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	form, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Keep the previous image unless a new one is uploaded.
	image := existing.Image
	if file, err := c.FormFile("image"); err == nil {
		if image, err = h.images.Save(file); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return
		}
		h.images.Remove(existing.Image)
	}

	// Quantity is never written here: stock changes go through the
	// movement ledger only.
	product := &models.Product{
		ID:          existing.ID,
		Name:        form.name,
		CategoryID:  form.categoryID,
		Quantity:    existing.Quantity,
		Price:       form.price,
		MinStock:    form.minStock,
		Description: form.description,
		Image:       image,
	}
	if err := h.repo.Update(product); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	updated, err := h.repo.GetByID(existing.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, toResponse(updated))
}

func (h *ProductHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	existing, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	if err := h.repo.Delete(existing.ID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	if existing.Image != "" {
		h.images.Remove(existing.Image)
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

type productForm struct {
	name        string
	categoryID  *uint
	quantity    int
	price       decimal.Decimal
	minStock    int
	description string
}

func parseProductForm(c *gin.Context) (*productForm, error) {
	form := &productForm{
		name:        c.PostForm("name"),
		description: c.PostForm("description"),
	}
	if form.name == "" {
		return nil, errors.New("name is required")
	}

	if v := c.PostForm("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		cid := uint(id)
		form.categoryID = &cid
	}

	if v := c.PostForm("quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 0 {
			return nil, errors.New("quantity must be a non-negative integer")
		}
		form.quantity = q
	}

	if v := c.PostForm("min_stock"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 0 {
			return nil, errors.New("min_stock must be a non-negative integer")
		}
		form.minStock = m
	}

	if v := c.PostForm("price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil || p.IsNegative() {
			return nil, errors.New("price must be a non-negative number")
		}
		form.price = p
	}

	return form, nil
}

func toResponse(p *models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.CategoryName,
		CategoryID:  p.CategoryID,
		Quantity:    p.Quantity,
		Price:       p.Price.InexactFloat64(),
		MinStock:    p.MinStock,
		Description: p.Description,
		Image:       p.Image,
		UpdatedAt:   p.UpdatedAt,
	}
}
