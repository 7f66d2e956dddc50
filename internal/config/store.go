package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agentcrew/mcp-editor/internal/models"
)

const DefaultConfigPath = "configs/servers.yaml"

// Store reads and writes the MCP server collection as one YAML document: a
// top-level mapping of server id to configuration. Every write replaces the
// whole file; there are no partial updates.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection from disk. Display order follows the
// document order of the mapping keys.
func (s *Store) Load() (*models.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseCollection(data)
}

// Save rewrites the entire collection to disk in display order.
func (s *Store) Save(collection *models.Collection) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshalCollection(collection)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// parseCollection decodes a YAML mapping of id -> server config, preserving
// the order in which ids appear in the document.
func parseCollection(data []byte) (*models.Collection, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	collection := models.NewCollection()
	if len(node.Content) == 0 {
		return collection, nil
	}

	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config root must be a mapping of server ids")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valueNode := root.Content[i+1]

		var server models.ServerConfig
		if err := valueNode.Decode(&server); err != nil {
			return nil, fmt.Errorf("failed to decode server '%s': %w", keyNode.Value, err)
		}
		server.ID = keyNode.Value
		if server.Transport == "" {
			// Older files omit the transport and imply it from the fields.
			if server.URL != "" && server.Command == "" {
				server.Transport = models.TransportStreaming
			} else {
				server.Transport = models.TransportStdio
			}
		}

		if err := collection.Append(&server); err != nil {
			return nil, fmt.Errorf("failed to load server '%s': %w", keyNode.Value, err)
		}
	}

	return collection, nil
}

// marshalCollection encodes the collection as an explicit mapping node so the
// on-disk key order matches display order.
func marshalCollection(collection *models.Collection) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, server := range collection.Servers() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: server.ID}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(server); err != nil {
			return nil, fmt.Errorf("failed to marshal server '%s': %w", server.ID, err)
		}

		root.Content = append(root.Content, keyNode, valueNode)
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return data, nil
}
