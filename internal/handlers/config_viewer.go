package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ConfigViewerHandler exposes the raw store file for inspection.
type ConfigViewerHandler struct {
	configPath string
}

func NewConfigViewerHandler(configPath string) *ConfigViewerHandler {
	return &ConfigViewerHandler{configPath: configPath}
}

func (h *ConfigViewerHandler) GetStoreConfig(c *gin.Context) {
	data, err := os.ReadFile(h.configPath)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading config: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "config_content.html", gin.H{
		"title":    "Server Configuration",
		"content":  string(data),
		"language": "yaml",
	})
}
