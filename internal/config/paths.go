package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveConfigPath implements smart config path resolution with fallback
func ResolveConfigPath(configPath string) (string, error) {
	// If explicit path provided, try to use it - create if it doesn't exist
	if configPath != "" {
		expanded := ExpandPath(configPath)
		if _, err := os.Stat(expanded); err != nil {
			if err := createDefaultConfig(expanded); err != nil {
				return "", fmt.Errorf("specified config file not found and could not create: %s", expanded)
			}
			fmt.Printf("Created config file at: %s\n", expanded)
		}
		return expanded, nil
	}

	// Priority order for auto-resolution:
	// 1. ~/.config/mcp-editor/servers.yaml (user config)
	// 2. ./servers.yaml (current directory)
	// 3. configs/servers.yaml (relative to binary)
	// 4. Auto-create user config if none found

	candidates := []string{
		ExpandPath("~/.config/mcp-editor/servers.yaml"),
		"./servers.yaml",
		DefaultConfigPath,
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	userConfigPath := ExpandPath("~/.config/mcp-editor/servers.yaml")
	if err := createDefaultConfig(userConfigPath); err != nil {
		return "", fmt.Errorf("failed to create default config: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", userConfigPath)
	fmt.Println("Please edit this file or use the editor to configure your MCP servers.")

	return userConfigPath, nil
}

// createDefaultConfig creates a default config file with example servers
func createDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# MCP Server Configuration
# One entry per server; the key is the stable server id.
#
# stdio servers run a local command; streaming servers connect to a URL.
# enabledForAgents lists the agents that may use each server.

filesystem:
  name: "Filesystem"
  transport: "stdio"
  command: "npx"
  args: ["@modelcontextprotocol/server-filesystem", "/path/to/your/directory"]
  env:
    NODE_ENV: "production"
  enabledForAgents: []

# remote_tools:
#   name: "Remote Tools"
#   transport: "streaming"
#   url: "http://localhost:8080/mcp"
#   enabledForAgents:
#     - "default"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
