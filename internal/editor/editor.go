package editor

import (
	"fmt"

	"github.com/agentcrew/mcp-editor/internal/models"
)

// Store is the persistence contract the editor saves through. Writes always
// cover the whole collection.
type Store interface {
	Load() (*models.Collection, error)
	Save(*models.Collection) error
}

// Editor is the state model behind the MCP server configuration form: an
// ordered collection of servers, a selection, per-field editing buffers and a
// dirty flag for the in-progress edit. It has no rendering of its own —
// adapters translate UI events into these operations and draw the result.
//
// All operations are synchronous and the editor is not safe for concurrent
// use; the surrounding event loop is the single caller.
type Editor struct {
	store           Store
	collection      *models.Collection
	availableAgents []string

	selected string
	enabled  bool
	dirty    bool
	form     Form

	listeners []func()
}

func New(store Store, availableAgents []string) *Editor {
	return &Editor{
		store:           store,
		collection:      models.NewCollection(),
		availableAgents: availableAgents,
	}
}

// Load reads the full collection from the store. Selection starts empty and
// the editor pane disabled.
func (e *Editor) Load() error {
	collection, err := e.store.Load()
	if err != nil {
		return err
	}
	e.collection = collection
	e.selected = ""
	e.enabled = false
	e.dirty = false
	return nil
}

// OnChange registers a listener invoked after every successful write to the
// store, with no payload. Listeners are expected to re-read the store.
func (e *Editor) OnChange(fn func()) {
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) notifyChanged() {
	for _, fn := range e.listeners {
		fn()
	}
}

// Servers returns the collection in display order.
func (e *Editor) Servers() []*models.ServerConfig {
	return e.collection.Servers()
}

func (e *Editor) AvailableAgents() []string {
	return e.availableAgents
}

// Selected returns the id of the currently selected server, or "" when
// nothing is selected.
func (e *Editor) Selected() string {
	return e.selected
}

// Enabled reports whether the editor pane accepts edits.
func (e *Editor) Enabled() bool {
	return e.enabled
}

// Dirty reports whether the form holds edits not yet committed by Save.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// CanSave mirrors the save control state: a selection exists and the form
// has unsaved edits.
func (e *Editor) CanSave() bool {
	return e.selected != "" && e.dirty
}

// Form returns a copy of the current editing buffers.
func (e *Editor) Form() Form {
	form := e.form
	form.Args = append([]string(nil), e.form.Args...)
	form.Env = append([]EnvEntry(nil), e.form.Env...)
	form.Agents = make(map[string]bool, len(e.form.Agents))
	for agent, checked := range e.form.Agents {
		form.Agents[agent] = checked
	}
	return form
}

// Select loads the record's fields into the form and resets the dirty flag.
// Unsaved edits to the previous selection are discarded without prompting.
func (e *Editor) Select(id string) error {
	server, ok := e.collection.Get(id)
	if !ok {
		return fmt.Errorf("server '%s' not found", id)
	}

	e.form.loadFrom(server, e.availableAgents)
	e.selected = id
	e.enabled = true
	e.dirty = false
	return nil
}

// Deselect clears the selection and disables the editor pane.
func (e *Editor) Deselect() {
	e.selected = ""
	e.enabled = false
	e.dirty = false
}

func (e *Editor) markDirty() {
	if e.enabled && e.selected != "" {
		e.dirty = true
	}
}

func (e *Editor) SetName(name string) {
	e.form.Name = name
	e.markDirty()
}

func (e *Editor) SetCommand(command string) {
	e.form.Command = command
	e.markDirty()
}

func (e *Editor) SetURL(url string) {
	e.form.URL = url
	e.markDirty()
}

// SetTransport switches the active field group. The inactive group's values
// stay in the buffers, so switching back restores them.
func (e *Editor) SetTransport(transport models.Transport) {
	e.form.Transport = transport
	e.markDirty()
}

func (e *Editor) SetAgentEnabled(agent string, enabled bool) {
	if e.form.Agents == nil {
		e.form.Agents = make(map[string]bool)
	}
	e.form.Agents[agent] = enabled
	e.markDirty()
}

func (e *Editor) AddArgument(value string) {
	e.form.Args = append(e.form.Args, value)
	e.markDirty()
}

func (e *Editor) SetArgument(index int, value string) error {
	if index < 0 || index >= len(e.form.Args) {
		return fmt.Errorf("argument index %d out of range", index)
	}
	e.form.Args[index] = value
	e.markDirty()
	return nil
}

func (e *Editor) RemoveArgument(index int) error {
	if index < 0 || index >= len(e.form.Args) {
		return fmt.Errorf("argument index %d out of range", index)
	}
	e.form.Args = append(e.form.Args[:index], e.form.Args[index+1:]...)
	e.markDirty()
	return nil
}

func (e *Editor) AddEnvVar(key, value string) {
	e.form.Env = append(e.form.Env, EnvEntry{Key: key, Value: value})
	e.markDirty()
}

func (e *Editor) SetEnvVar(index int, key, value string) error {
	if index < 0 || index >= len(e.form.Env) {
		return fmt.Errorf("environment variable index %d out of range", index)
	}
	e.form.Env[index] = EnvEntry{Key: key, Value: value}
	e.markDirty()
	return nil
}

func (e *Editor) RemoveEnvVar(index int) error {
	if index < 0 || index >= len(e.form.Env) {
		return fmt.Errorf("environment variable index %d out of range", index)
	}
	e.form.Env = append(e.form.Env[:index], e.form.Env[index+1:]...)
	e.markDirty()
	return nil
}

// Create appends a new server with placeholder defaults, selects it and
// marks the form dirty: the record exists in memory but is unsaved until the
// user saves it. The adapter should focus the name field.
func (e *Editor) Create() (*models.ServerConfig, error) {
	server := &models.ServerConfig{
		ID:        e.collection.NextID(),
		Name:      "New Server",
		Transport: models.TransportStdio,
		Command:   "docker",
		Args:      []string{"run", "-i", "--rm"},
	}

	if err := e.collection.Append(server); err != nil {
		return nil, err
	}
	if err := e.Select(server.ID); err != nil {
		return nil, err
	}

	e.dirty = true
	return server, nil
}

// Save validates the form, commits the buffers to the selected record and
// rewrites the whole collection to the store. On validation failure nothing
// is mutated. The in-memory collection adopts the new record only after the
// store write succeeds, so a failed write leaves memory and disk consistent.
func (e *Editor) Save() error {
	if e.selected == "" {
		return fmt.Errorf("no server selected")
	}

	if err := e.form.validate(); err != nil {
		return err
	}

	server := e.form.toServer(e.availableAgents)
	server.ID = e.selected

	updated := e.collection.Clone()
	if err := updated.Replace(e.selected, server); err != nil {
		return err
	}

	if err := e.store.Save(updated); err != nil {
		return err
	}

	e.collection = updated
	e.dirty = false
	e.notifyChanged()
	return nil
}

// Remove deletes the selected server after explicit confirmation and
// persists the shrunk collection. Without confirmation it is a no-op.
func (e *Editor) Remove(confirmed bool) error {
	if e.selected == "" {
		return fmt.Errorf("no server selected")
	}
	if !confirmed {
		return nil
	}

	updated := e.collection.Clone()
	if err := updated.Remove(e.selected); err != nil {
		return err
	}

	if err := e.store.Save(updated); err != nil {
		return err
	}

	e.collection = updated
	e.Deselect()
	e.notifyChanged()
	return nil
}
