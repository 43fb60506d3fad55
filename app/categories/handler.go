package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estoqueapp/estoque-api/models"
)

type CategoryProvider interface {
	GetAll() ([]models.Category, error)
	Create(category *models.Category) error
	Delete(id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(c *gin.Context) {
	categories, err := h.repo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	category := &models.Category{Name: input.Name}
	if err := h.repo.Create(category); err != nil {
		if errors.Is(err, models.ErrCategoryExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": category.ID, "name": category.Name})
}

func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		case errors.Is(err, models.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "category has linked products"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category removed"})
}
