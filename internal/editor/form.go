package editor

import (
	"sort"
	"strings"

	"github.com/agentcrew/mcp-editor/internal/models"
)

// EnvEntry is one row of the environment variable editing buffer. Unlike the
// saved map it allows duplicate and empty keys while the user is typing.
type EnvEntry struct {
	Key   string
	Value string
}

// Form holds the editing buffers for the selected server. Both transport
// field groups keep their values regardless of which transport is active, so
// toggling back and forth loses nothing.
type Form struct {
	Name      string
	Transport models.Transport
	Command   string
	URL       string
	Args      []string
	Env       []EnvEntry
	Agents    map[string]bool
}

func (f *Form) loadFrom(server *models.ServerConfig, availableAgents []string) {
	f.Name = server.Name
	f.Transport = server.Transport
	f.Command = server.Command
	f.URL = server.URL

	f.Args = make([]string, len(server.Args))
	copy(f.Args, server.Args)

	f.Env = f.Env[:0]
	keys := make([]string, 0, len(server.Env))
	for key := range server.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		f.Env = append(f.Env, EnvEntry{Key: key, Value: server.Env[key]})
	}

	f.Agents = make(map[string]bool, len(availableAgents))
	for _, agent := range availableAgents {
		f.Agents[agent] = server.EnabledFor(agent)
	}
}

func (f *Form) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "server name cannot be empty"}
	}
	switch f.Transport {
	case models.TransportStreaming:
		if strings.TrimSpace(f.URL) == "" {
			return &ValidationError{Field: "url", Reason: "URL cannot be empty for streaming servers"}
		}
	default:
		if strings.TrimSpace(f.Command) == "" {
			return &ValidationError{Field: "command", Reason: "command cannot be empty for stdio servers"}
		}
	}
	return nil
}

// toServer snapshots the buffers into a persistable record: empty args are
// dropped, env entries with empty keys are dropped and duplicate keys
// collapse to the last entry.
func (f *Form) toServer(availableAgents []string) *models.ServerConfig {
	server := &models.ServerConfig{
		Name:      strings.TrimSpace(f.Name),
		Transport: f.Transport,
		Command:   strings.TrimSpace(f.Command),
		URL:       strings.TrimSpace(f.URL),
	}

	for _, arg := range f.Args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			server.Args = append(server.Args, trimmed)
		}
	}

	env := make(map[string]string)
	for _, entry := range f.Env {
		if key := strings.TrimSpace(entry.Key); key != "" {
			env[key] = strings.TrimSpace(entry.Value)
		}
	}
	if len(env) > 0 {
		server.Env = env
	}

	for _, agent := range availableAgents {
		if f.Agents[agent] {
			server.EnabledForAgents = append(server.EnabledForAgents, agent)
		}
	}

	return server
}
