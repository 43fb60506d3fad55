package movements

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estoqueapp/estoque-api/models"
)

type MovementProvider interface {
	Register(in models.MovementInput) (*models.StockMovement, error)
}

type MovementHandler struct {
	repo MovementProvider
}

func NewMovementHandler(r MovementProvider) *MovementHandler {
	return &MovementHandler{repo: r}
}

// HandleCreate registers one stock movement. Success is 201; every
// business-rule rejection is a 400 with a readable message, a missing
// product is 404.
func (h *MovementHandler) HandleCreate(c *gin.Context) {
	var input struct {
		ProductID uint   `json:"product_id"`
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if input.ProductID == 0 || input.Quantity <= 0 ||
		(input.Type != models.MovementIn && input.Type != models.MovementOut) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movement data"})
		return
	}

	movement, err := h.repo.Register(models.MovementInput{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
	})
	if err != nil {
		var insufficient *models.InsufficientStockError
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{"error": insufficient.Error()})
		case errors.Is(err, models.ErrInvalidMovement):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movement data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register movement"})
		}
		return
	}

	c.JSON(http.StatusCreated, movement)
}
