package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/agentcrew/mcp-editor/internal/models"
)

// fakeStore keeps the collection in memory and counts writes.
type fakeStore struct {
	collection *models.Collection
	saves      int
	failSave   error
}

func (s *fakeStore) Load() (*models.Collection, error) {
	return s.collection, nil
}

func (s *fakeStore) Save(collection *models.Collection) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.saves++
	s.collection = collection
	return nil
}

func newTestStore(t *testing.T, servers ...*models.ServerConfig) *fakeStore {
	t.Helper()
	collection := models.NewCollection()
	for _, server := range servers {
		if err := collection.Append(server); err != nil {
			t.Fatalf("Failed to seed collection: %v", err)
		}
	}
	return &fakeStore{collection: collection}
}

func stdioServer(id, name string) *models.ServerConfig {
	return &models.ServerConfig{
		ID:        id,
		Name:      name,
		Transport: models.TransportStdio,
		Command:   "npx",
		Args:      []string{"-y", "@modelcontextprotocol/server-filesystem"},
		Env:       map[string]string{"NODE_ENV": "production"},
	}
}

func newTestEditor(t *testing.T, store *fakeStore) *Editor {
	t.Helper()
	ed := New(store, []string{"default", "coding"})
	if err := ed.Load(); err != nil {
		t.Fatalf("Failed to load editor: %v", err)
	}
	return ed
}

func TestLoadStartsWithEmptySelection(t *testing.T) {
	ed := newTestEditor(t, newTestStore(t, stdioServer("s1", "Filesystem")))

	if ed.Selected() != "" {
		t.Errorf("Expected empty selection after load, got %q", ed.Selected())
	}
	if ed.Enabled() {
		t.Error("Expected editor pane disabled after load")
	}
	if ed.Dirty() {
		t.Error("Expected dirty=false after load")
	}
}

func TestSaveFiltersEmptyArgsAndEnvKeys(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	ed.AddArgument("")
	ed.AddArgument("  ")
	ed.AddArgument("--verbose")
	ed.AddEnvVar("", "ignored")
	ed.AddEnvVar("DEBUG", "1")

	if err := ed.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, ok := store.collection.Get("s1")
	if !ok {
		t.Fatal("Saved server not found in persisted collection")
	}

	wantArgs := []string{"-y", "@modelcontextprotocol/server-filesystem", "--verbose"}
	if !reflect.DeepEqual(saved.Args, wantArgs) {
		t.Errorf("Args: got %v, want %v", saved.Args, wantArgs)
	}

	wantEnv := map[string]string{"NODE_ENV": "production", "DEBUG": "1"}
	if !reflect.DeepEqual(saved.Env, wantEnv) {
		t.Errorf("Env: got %v, want %v", saved.Env, wantEnv)
	}
}

func TestSaveStreamingWithoutURLFails(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetTransport(models.TransportStreaming)
	ed.SetURL("")

	err := ed.Save()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "url" {
		t.Errorf("Expected url field error, got %q", validationErr.Field)
	}

	if store.saves != 0 {
		t.Errorf("Expected no store writes on validation failure, got %d", store.saves)
	}
	original, _ := store.collection.Get("s1")
	if original.Transport != models.TransportStdio {
		t.Error("Collection record mutated despite validation failure")
	}
	if !ed.Dirty() {
		t.Error("Expected form to stay dirty after failed save")
	}
}

func TestSaveEmptyNameFails(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetName("   ")

	err := ed.Save()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "name" {
		t.Errorf("Expected name field error, got %q", validationErr.Field)
	}
}

func TestTransportRoundTripPreservesFields(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	before := ed.Form()

	ed.SetTransport(models.TransportStreaming)
	ed.SetURL("http://localhost:8080/mcp")
	ed.SetTransport(models.TransportStdio)

	after := ed.Form()
	if after.Command != before.Command {
		t.Errorf("Command lost: got %q, want %q", after.Command, before.Command)
	}
	if !reflect.DeepEqual(after.Args, before.Args) {
		t.Errorf("Args lost: got %v, want %v", after.Args, before.Args)
	}
	if !reflect.DeepEqual(after.Env, before.Env) {
		t.Errorf("Env lost: got %v, want %v", after.Env, before.Env)
	}
	if after.URL != "http://localhost:8080/mcp" {
		t.Errorf("URL lost on switch back: got %q", after.URL)
	}
}

func TestCreateThenSaveSucceedsOnDefaults(t *testing.T) {
	store := newTestStore(t)
	ed := newTestEditor(t, store)

	server, err := ed.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if server.Name != "New Server" {
		t.Errorf("Expected placeholder name, got %q", server.Name)
	}
	if server.Command != "docker" {
		t.Errorf("Expected placeholder command, got %q", server.Command)
	}
	if !ed.Dirty() {
		t.Error("Expected dirty=true after create")
	}
	if ed.Selected() != server.ID {
		t.Errorf("Expected new server selected, got %q", ed.Selected())
	}

	if err := ed.Save(); err != nil {
		t.Fatalf("Save of placeholder defaults failed: %v", err)
	}

	saved, ok := store.collection.Get(server.ID)
	if !ok {
		t.Fatal("Created server not persisted")
	}
	wantArgs := []string{"run", "-i", "--rm"}
	if !reflect.DeepEqual(saved.Args, wantArgs) {
		t.Errorf("Args: got %v, want %v", saved.Args, wantArgs)
	}
}

func TestCreateGeneratesSequentialIDs(t *testing.T) {
	ed := newTestEditor(t, newTestStore(t, stdioServer("s1", "Filesystem")))

	first, err := ed.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := ed.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.ID != "new_server_2" {
		t.Errorf("First id: got %q, want new_server_2", first.ID)
	}
	if second.ID != "new_server_3" {
		t.Errorf("Second id: got %q, want new_server_3", second.ID)
	}
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"), stdioServer("s2", "Git"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if err := ed.Remove(false); err != nil {
		t.Fatalf("Unconfirmed remove returned error: %v", err)
	}
	if len(ed.Servers()) != 2 {
		t.Errorf("Collection changed on unconfirmed remove: %d servers", len(ed.Servers()))
	}
	if ed.Selected() != "s1" {
		t.Errorf("Selection changed on unconfirmed remove: %q", ed.Selected())
	}
	if store.saves != 0 {
		t.Errorf("Store written on unconfirmed remove: %d saves", store.saves)
	}

	if err := ed.Remove(true); err != nil {
		t.Fatalf("Confirmed remove failed: %v", err)
	}
	if len(ed.Servers()) != 1 {
		t.Errorf("Expected 1 server after remove, got %d", len(ed.Servers()))
	}
	if store.saves != 1 {
		t.Errorf("Expected 1 store write after remove, got %d", store.saves)
	}
	if ed.Selected() != "" {
		t.Errorf("Expected selection cleared after remove, got %q", ed.Selected())
	}
	if _, ok := store.collection.Get("s1"); ok {
		t.Error("Removed server still in persisted collection")
	}
}

func TestDirtyLifecycle(t *testing.T) {
	ed := newTestEditor(t, newTestStore(t, stdioServer("s1", "Filesystem")))

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if ed.Dirty() {
		t.Error("Expected dirty=false immediately after select")
	}

	ed.SetName("Renamed")
	if !ed.Dirty() {
		t.Error("Expected dirty=true after field edit")
	}

	if err := ed.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if ed.Dirty() {
		t.Error("Expected dirty=false after successful save")
	}
}

func TestSelectDiscardsUnsavedEdits(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"), stdioServer("s2", "Git"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetName("Edited but never saved")

	if err := ed.Select("s2"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if ed.Dirty() {
		t.Error("Expected dirty=false after selecting another server")
	}

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if ed.Form().Name != "Filesystem" {
		t.Errorf("Expected unsaved edit discarded, form shows %q", ed.Form().Name)
	}
}

func TestSaveFailureLeavesCollectionUnchanged(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetName("Renamed")

	store.failSave = errors.New("disk full")
	if err := ed.Save(); err == nil {
		t.Fatal("Expected save to propagate the store error")
	}

	record, _ := store.collection.Get("s1")
	if record.Name != "Filesystem" {
		t.Errorf("In-memory record mutated despite failed write: %q", record.Name)
	}
	if !ed.Dirty() {
		t.Error("Expected form to stay dirty after failed write")
	}

	store.failSave = nil
	if err := ed.Save(); err != nil {
		t.Fatalf("Retry save failed: %v", err)
	}
	record, _ = store.collection.Get("s1")
	if record.Name != "Renamed" {
		t.Errorf("Retried save not persisted: %q", record.Name)
	}
}

func TestEnvDuplicateKeysCollapseToLast(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"))
	ed := newTestEditor(t, store)

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.AddEnvVar("DEBUG", "0")
	ed.AddEnvVar("DEBUG", "1")

	if err := ed.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, _ := store.collection.Get("s1")
	if saved.Env["DEBUG"] != "1" {
		t.Errorf("Expected last duplicate key to win, got %q", saved.Env["DEBUG"])
	}
}

func TestChangeNotification(t *testing.T) {
	store := newTestStore(t, stdioServer("s1", "Filesystem"), stdioServer("s2", "Git"))
	ed := newTestEditor(t, store)

	notified := 0
	ed.OnChange(func() { notified++ })

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetName("Renamed")

	if err := ed.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if notified != 1 {
		t.Errorf("Expected 1 notification after save, got %d", notified)
	}

	if err := ed.Select("s2"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := ed.Remove(true); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if notified != 2 {
		t.Errorf("Expected 2 notifications after remove, got %d", notified)
	}

	// Validation failures must not notify.
	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	ed.SetName("")
	if err := ed.Save(); err == nil {
		t.Fatal("Expected validation error")
	}
	if notified != 2 {
		t.Errorf("Validation failure triggered a notification: %d", notified)
	}
}

func TestArgumentAndEnvBufferOps(t *testing.T) {
	ed := newTestEditor(t, newTestStore(t, stdioServer("s1", "Filesystem")))

	if err := ed.Select("s1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if err := ed.SetArgument(0, "-force"); err != nil {
		t.Fatalf("SetArgument failed: %v", err)
	}
	if got := ed.Form().Args[0]; got != "-force" {
		t.Errorf("SetArgument: got %q", got)
	}

	if err := ed.RemoveArgument(5); err == nil {
		t.Error("Expected out-of-range error for RemoveArgument(5)")
	}
	if err := ed.SetEnvVar(3, "K", "V"); err == nil {
		t.Error("Expected out-of-range error for SetEnvVar(3)")
	}

	if err := ed.RemoveArgument(0); err != nil {
		t.Fatalf("RemoveArgument failed: %v", err)
	}
	if len(ed.Form().Args) != 1 {
		t.Errorf("Expected 1 arg after removal, got %d", len(ed.Form().Args))
	}

	if err := ed.RemoveEnvVar(0); err != nil {
		t.Fatalf("RemoveEnvVar failed: %v", err)
	}
	if len(ed.Form().Env) != 0 {
		t.Errorf("Expected empty env buffer, got %d entries", len(ed.Form().Env))
	}
}
