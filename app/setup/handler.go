package setup

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type InstallerProvider interface {
	Installed() (bool, error)
	Install() error
}

type SetupHandler struct {
	repo InstallerProvider
}

func NewSetupHandler(r InstallerProvider) *SetupHandler {
	return &SetupHandler{repo: r}
}

func (h *SetupHandler) HandleStatus(c *gin.Context) {
	installed, err := h.repo.Installed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"installed": installed})
}

func (h *SetupHandler) HandleInstall(c *gin.Context) {
	if err := h.repo.Install(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "installation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "system installed"})
}
