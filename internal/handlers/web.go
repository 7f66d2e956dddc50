package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agentcrew/mcp-editor/internal/editor"
	"github.com/agentcrew/mcp-editor/internal/models"
)

type WebHandler struct {
	editor *editor.Editor
}

func NewWebHandler(ed *editor.Editor) *WebHandler {
	return &WebHandler{editor: ed}
}

// formView is the template-facing shape of the editing buffers: args and env
// are flattened to line-oriented text areas.
type formView struct {
	ID        string
	Name      string
	Streaming bool
	Command   string
	URL       string
	ArgsText  string
	EnvText   string
	Agents    []agentView
	Error     string
	Dirty     bool
}

type agentView struct {
	Name    string
	Checked bool
}

func (h *WebHandler) Index(c *gin.Context) {
	var view *formView
	if selected := c.Query("selected"); selected != "" {
		if err := h.editor.Select(selected); err == nil {
			view = h.currentForm("")
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"servers":  h.editor.Servers(),
		"selected": h.editor.Selected(),
		"form":     view,
	})
}

// ServerForm selects a server and returns the editor form fragment.
func (h *WebHandler) ServerForm(c *gin.Context) {
	id := c.Param("id")

	if err := h.editor.Select(id); err != nil {
		c.Data(http.StatusNotFound, "text/html", []byte(renderErrorBox(err.Error())))
		return
	}

	c.HTML(http.StatusOK, "server_form.html", gin.H{"form": h.currentForm("")})
}

// CreateServer adds a placeholder server and sends the browser to its form.
func (h *WebHandler) CreateServer(c *gin.Context) {
	server, err := h.editor.Create()
	if err != nil {
		c.Data(http.StatusInternalServerError, "text/html", []byte(renderErrorBox(err.Error())))
		return
	}

	c.Redirect(http.StatusSeeOther, "/?selected="+server.ID)
}

// SaveServer replays the submitted form into the editor and saves. On a
// validation failure the fragment is re-rendered with the entered values and
// an error box, exactly as the user left them.
func (h *WebHandler) SaveServer(c *gin.Context) {
	id := c.Param("id")

	if h.editor.Selected() != id {
		if err := h.editor.Select(id); err != nil {
			c.Data(http.StatusNotFound, "text/html", []byte(renderErrorBox(err.Error())))
			return
		}
	}

	h.applyForm(c)

	if err := h.editor.Save(); err != nil {
		var validationErr *editor.ValidationError
		if errors.As(err, &validationErr) {
			c.HTML(http.StatusBadRequest, "server_form.html", gin.H{
				"form": h.currentForm(validationErr.Error()),
			})
			return
		}
		c.Data(http.StatusInternalServerError, "text/html", []byte(renderErrorBox(err.Error())))
		return
	}

	c.Redirect(http.StatusSeeOther, "/?selected="+id)
}

// DeleteServer removes the server once the confirm field (set by the
// browser-side confirmation dialog) acknowledges the removal.
func (h *WebHandler) DeleteServer(c *gin.Context) {
	id := c.Param("id")

	if c.PostForm("confirm") != "true" {
		c.Redirect(http.StatusSeeOther, "/?selected="+id)
		return
	}

	if h.editor.Selected() != id {
		if err := h.editor.Select(id); err != nil {
			c.Data(http.StatusNotFound, "text/html", []byte(renderErrorBox(err.Error())))
			return
		}
	}

	if err := h.editor.Remove(true); err != nil {
		c.Data(http.StatusInternalServerError, "text/html", []byte(renderErrorBox(err.Error())))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// applyForm replays the POSTed fields through the editor operations.
func (h *WebHandler) applyForm(c *gin.Context) {
	h.editor.SetName(c.PostForm("name"))

	transport := models.TransportStdio
	if c.PostForm("transport") == string(models.TransportStreaming) {
		transport = models.TransportStreaming
	}
	h.editor.SetTransport(transport)
	h.editor.SetCommand(c.PostForm("command"))
	h.editor.SetURL(c.PostForm("url"))

	for range h.editor.Form().Args {
		h.editor.RemoveArgument(0)
	}
	for _, line := range splitLines(c.PostForm("args")) {
		h.editor.AddArgument(line)
	}

	for range h.editor.Form().Env {
		h.editor.RemoveEnvVar(0)
	}
	for _, line := range splitLines(c.PostForm("env")) {
		key, value, _ := strings.Cut(line, "=")
		h.editor.AddEnvVar(key, value)
	}

	checked := make(map[string]bool)
	for _, agent := range c.PostFormArray("agents") {
		checked[agent] = true
	}
	for _, agent := range h.editor.AvailableAgents() {
		h.editor.SetAgentEnabled(agent, checked[agent])
	}
}

func (h *WebHandler) currentForm(errorMessage string) *formView {
	form := h.editor.Form()

	view := &formView{
		ID:        h.editor.Selected(),
		Name:      form.Name,
		Streaming: form.Transport == models.TransportStreaming,
		Command:   form.Command,
		URL:       form.URL,
		ArgsText:  strings.Join(form.Args, "\n"),
		Error:     errorMessage,
		Dirty:     h.editor.Dirty(),
	}

	envLines := make([]string, 0, len(form.Env))
	for _, entry := range form.Env {
		envLines = append(envLines, entry.Key+"="+entry.Value)
	}
	view.EnvText = strings.Join(envLines, "\n")

	for _, agent := range h.editor.AvailableAgents() {
		view.Agents = append(view.Agents, agentView{Name: agent, Checked: form.Agents[agent]})
	}

	return view
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func renderErrorBox(message string) string {
	return fmt.Sprintf(`
		<div class="text-red-600 text-sm font-medium p-2 bg-red-50 rounded border border-red-200">
			%s
		</div>
	`, message)
}
