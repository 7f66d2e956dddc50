package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentcrew/mcp-editor/internal/editor"
	"github.com/agentcrew/mcp-editor/internal/models"
	"github.com/agentcrew/mcp-editor/internal/registry"
)

// ServerPayload is the JSON body for saving a server. The id comes from the
// URL and is never taken from the payload.
type ServerPayload struct {
	Name             string            `json:"name"`
	Transport        string            `json:"transport"`
	Command          string            `json:"command"`
	Args             []string          `json:"args"`
	URL              string            `json:"url"`
	Env              map[string]string `json:"env"`
	EnabledForAgents []string          `json:"enabledForAgents"`
}

type APIHandler struct {
	editor   *editor.Editor
	registry *registry.AgentRegistry
}

func NewAPIHandler(ed *editor.Editor, reg *registry.AgentRegistry) *APIHandler {
	return &APIHandler{
		editor:   ed,
		registry: reg,
	}
}

func (h *APIHandler) GetServers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"servers": h.editor.Servers()})
}

func (h *APIHandler) GetServer(c *gin.Context) {
	id := c.Param("id")

	for _, server := range h.editor.Servers() {
		if server.ID == id {
			c.JSON(http.StatusOK, server)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "server '" + id + "' not found"})
}

// CreateServer appends a new server with placeholder defaults and selects it.
// The record stays unsaved until the first successful save.
func (h *APIHandler) CreateServer(c *gin.Context) {
	server, err := h.editor.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "server": server})
}

// UpdateServer selects the server, replays the payload into the editing
// buffers and saves. Validation failures leave the collection untouched.
func (h *APIHandler) UpdateServer(c *gin.Context) {
	id := c.Param("id")

	var payload ServerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	if err := h.editor.Select(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := applyPayload(h.editor, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editor.Save(); err != nil {
		var validationErr *editor.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteServer removes the server. The confirm query parameter is the
// explicit acknowledgment the removal requires.
func (h *APIHandler) DeleteServer(c *gin.Context) {
	id := c.Param("id")

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "removal requires confirm=true"})
		return
	}

	if err := h.editor.Select(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := h.editor.Remove(true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *APIHandler) GetAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": h.registry.Agents()})
}

func (h *APIHandler) GetAgentServers(c *gin.Context) {
	agent := c.Param("agent")

	if !h.registry.HasAgent(agent) {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent '" + agent + "' not found"})
		return
	}

	servers := h.registry.ServersForAgent(agent)
	if servers == nil {
		servers = []*models.ServerConfig{}
	}
	c.JSON(http.StatusOK, gin.H{"servers": servers})
}

// applyPayload replays a full-record payload through the editor's field
// operations so dirty tracking and buffer semantics stay in one place.
func applyPayload(ed *editor.Editor, payload *ServerPayload) error {
	transport, err := models.ParseTransport(payload.Transport)
	if err != nil {
		return err
	}

	ed.SetName(payload.Name)
	ed.SetTransport(transport)
	ed.SetCommand(payload.Command)
	ed.SetURL(payload.URL)

	for range ed.Form().Args {
		if err := ed.RemoveArgument(0); err != nil {
			return err
		}
	}
	for _, arg := range payload.Args {
		ed.AddArgument(arg)
	}

	for range ed.Form().Env {
		if err := ed.RemoveEnvVar(0); err != nil {
			return err
		}
	}
	for key, value := range payload.Env {
		ed.AddEnvVar(key, value)
	}

	enabled := make(map[string]bool, len(payload.EnabledForAgents))
	for _, agent := range payload.EnabledForAgents {
		enabled[agent] = true
	}
	for _, agent := range ed.AvailableAgents() {
		ed.SetAgentEnabled(agent, enabled[agent])
	}

	return nil
}
