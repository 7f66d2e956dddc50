// Package registry tracks which MCP servers each agent may use. It is the
// consumer side of the editor's change notification: on every signal it
// re-reads the store and rebuilds its projection.
package registry

import (
	"fmt"

	"github.com/agentcrew/mcp-editor/internal/models"
)

// Store is the read side of the configuration store.
type Store interface {
	Load() (*models.Collection, error)
}

type AgentRegistry struct {
	store  Store
	agents []string

	servers map[string][]*models.ServerConfig
}

func NewAgentRegistry(store Store, agents []string) *AgentRegistry {
	return &AgentRegistry{
		store:   store,
		agents:  agents,
		servers: make(map[string][]*models.ServerConfig),
	}
}

func (r *AgentRegistry) Agents() []string {
	return r.agents
}

// Reload re-reads the store and rebuilds the per-agent server lists. Wire it
// to the editor's OnChange signal.
func (r *AgentRegistry) Reload() error {
	collection, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to reload server configuration: %w", err)
	}

	servers := make(map[string][]*models.ServerConfig, len(r.agents))
	for _, server := range collection.Servers() {
		for _, agent := range server.EnabledForAgents {
			servers[agent] = append(servers[agent], server)
		}
	}

	r.servers = servers
	return nil
}

// ServersForAgent returns the servers enabled for the named agent, in the
// collection's display order. Unknown agents get an empty list.
func (r *AgentRegistry) ServersForAgent(agent string) []*models.ServerConfig {
	return r.servers[agent]
}

func (r *AgentRegistry) HasAgent(name string) bool {
	for _, agent := range r.agents {
		if agent == name {
			return true
		}
	}
	return false
}
