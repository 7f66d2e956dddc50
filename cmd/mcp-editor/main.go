package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/agentcrew/mcp-editor/internal/assets"
	"github.com/agentcrew/mcp-editor/internal/config"
	"github.com/agentcrew/mcp-editor/internal/editor"
	"github.com/agentcrew/mcp-editor/internal/handlers"
	"github.com/agentcrew/mcp-editor/internal/registry"
	"github.com/agentcrew/mcp-editor/internal/tui"
)

// defaultAgents is the agent list offered by the enable-for-agents controls
// until an agent roster source is wired in.
var defaultAgents = []string{"default", "coding", "research"}

func main() {
	var configPath = flag.String("config", "", "Path to config file (default: smart resolution)")
	var configShort = flag.String("c", "", "Path to config file (short form)")
	var useTUI = flag.Bool("tui", false, "Run the interactive terminal editor instead of the web server")
	var port = flag.Int("port", 6543, "Port for the web server")
	flag.Parse()

	// Use short form if provided, otherwise use long form
	finalConfigPath := *configPath
	if *configShort != "" {
		finalConfigPath = *configShort
	}

	actualConfigPath, err := config.ResolveConfigPath(finalConfigPath)
	if err != nil {
		log.Fatalf("Failed to resolve config path: %v", err)
	}

	store := config.NewStore(actualConfigPath)

	ed := editor.New(store, defaultAgents)
	if err := ed.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	agentRegistry := registry.NewAgentRegistry(store, defaultAgents)
	if err := agentRegistry.Reload(); err != nil {
		log.Fatalf("Failed to load agent registry: %v", err)
	}
	ed.OnChange(func() {
		if err := agentRegistry.Reload(); err != nil {
			log.Printf("Failed to reload agent registry: %v", err)
		}
	})

	if *useTUI {
		if err := tui.NewEditorUI(ed).Run(); err != nil {
			log.Fatalf("Editor failed: %v", err)
		}
		return
	}

	r := gin.Default()

	tmpl, err := assets.ParseTemplates(nil)
	if err != nil {
		log.Fatalf("Failed to parse embedded templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)

	apiHandler := handlers.NewAPIHandler(ed, agentRegistry)
	webHandler := handlers.NewWebHandler(ed)
	configHandler := handlers.NewConfigViewerHandler(actualConfigPath)

	r.GET("/", webHandler.Index)
	r.GET("/config", configHandler.GetStoreConfig)

	api := r.Group("/api")
	{
		api.GET("/servers", apiHandler.GetServers)
		api.POST("/servers", apiHandler.CreateServer)
		api.GET("/servers/:id", apiHandler.GetServer)
		api.PUT("/servers/:id", apiHandler.UpdateServer)
		api.DELETE("/servers/:id", apiHandler.DeleteServer)
		api.GET("/agents", apiHandler.GetAgents)
		api.GET("/agents/:agent/servers", apiHandler.GetAgentServers)
	}

	htmx := r.Group("/htmx")
	{
		htmx.POST("/servers", webHandler.CreateServer)
		htmx.GET("/servers/:id/form", webHandler.ServerForm)
		htmx.POST("/servers/:id/save", webHandler.SaveServer)
		htmx.POST("/servers/:id/delete", webHandler.DeleteServer)
	}

	address := fmt.Sprintf(":%d", *port)
	log.Printf("Starting MCP server editor on %s", address)
	if err := r.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
