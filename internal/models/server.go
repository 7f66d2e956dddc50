package models

import "fmt"

// Transport selects how an MCP server is reached: spawned as a local
// subprocess (stdio) or contacted over a network endpoint (streaming).
type Transport string

const (
	TransportStdio     Transport = "stdio"
	TransportStreaming Transport = "streaming"
)

func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case TransportStdio, TransportStreaming:
		return Transport(s), nil
	}
	return "", fmt.Errorf("unknown transport %q", s)
}

// ServerConfig is one entry in the MCP server collection. ID is assigned at
// creation and never changes; Name is what the UI shows. Command/Args/Env are
// meaningful for stdio transport, URL for streaming — both sets are kept even
// when the other transport is active.
type ServerConfig struct {
	ID               string            `yaml:"-" json:"id"`
	Name             string            `yaml:"name" json:"name"`
	Transport        Transport         `yaml:"transport" json:"transport"`
	Command          string            `yaml:"command,omitempty" json:"command,omitempty"`
	Args             []string          `yaml:"args,omitempty" json:"args,omitempty"`
	URL              string            `yaml:"url,omitempty" json:"url,omitempty"`
	Env              map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	EnabledForAgents []string          `yaml:"enabledForAgents,omitempty" json:"enabledForAgents,omitempty"`
}

// EnabledFor reports whether the server is enabled for the named agent.
func (s *ServerConfig) EnabledFor(agent string) bool {
	for _, a := range s.EnabledForAgents {
		if a == agent {
			return true
		}
	}
	return false
}
