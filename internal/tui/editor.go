// Package tui is the terminal adapter for the MCP server editor: huh forms
// translate keyboard interaction into editor operations and render the
// resulting state.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/agentcrew/mcp-editor/internal/editor"
	"github.com/agentcrew/mcp-editor/internal/models"
)

const (
	actionAdd  = "__add__"
	actionQuit = "__quit__"

	formActionSave   = "save"
	formActionDelete = "delete"
	formActionBack   = "back"
)

type EditorUI struct {
	editor *editor.Editor
	theme  *huh.Theme
}

func NewEditorUI(ed *editor.Editor) *EditorUI {
	return &EditorUI{
		editor: ed,
		theme:  EditorTheme(),
	}
}

// Run drives the pick-then-edit loop until the user quits.
func (ui *EditorUI) Run() error {
	fmt.Println(TitleStyle().Render("MCP Server Editor"))
	fmt.Println(MutedStyle().Render("Configure the servers your agents can use."))
	fmt.Println()

	for {
		choice, err := ui.pickServer()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch choice {
		case actionQuit:
			return nil
		case actionAdd:
			server, err := ui.editor.Create()
			if err != nil {
				return err
			}
			if err := ui.editServer(server.ID); err != nil {
				return err
			}
		default:
			if err := ui.editor.Select(choice); err != nil {
				return err
			}
			if err := ui.editServer(choice); err != nil {
				return err
			}
		}
	}
}

func (ui *EditorUI) pickServer() (string, error) {
	var options []huh.Option[string]
	for _, server := range ui.editor.Servers() {
		label := fmt.Sprintf("%s (%s)", server.Name, server.Transport)
		options = append(options, huh.NewOption(label, server.ID))
	}
	options = append(options,
		huh.NewOption("+ Add server", actionAdd),
		huh.NewOption("Quit", actionQuit),
	)

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("MCP Servers").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(ui.theme)

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// editServer runs the field form until the user saves, deletes or backs out.
// Validation failures re-open the form with the entered values intact.
func (ui *EditorUI) editServer(id string) error {
	buffers := ui.editor.Form()

	name := buffers.Name
	streaming := buffers.Transport == models.TransportStreaming
	command := buffers.Command
	url := buffers.URL
	argsText := strings.Join(buffers.Args, "\n")
	envText := envToText(buffers.Env)

	var agents []string
	for _, agent := range ui.editor.AvailableAgents() {
		if buffers.Agents[agent] {
			agents = append(agents, agent)
		}
	}

	for {
		action, err := ui.runForm(&name, &streaming, &command, &url, &argsText, &envText, &agents)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case formActionBack:
			return nil

		case formActionDelete:
			confirmed, err := ui.confirmDelete(name)
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				return err
			}
			if err := ui.editor.Remove(confirmed); err != nil {
				return err
			}
			if confirmed {
				fmt.Println(SuccessStyle().Render("Server removed."))
				return nil
			}

		case formActionSave:
			ui.applyBuffers(name, streaming, command, url, argsText, envText, agents)

			if err := ui.editor.Save(); err != nil {
				var validationErr *editor.ValidationError
				if errors.As(err, &validationErr) {
					fmt.Println(ErrorStyle().Render(validationErr.Error()))
					continue
				}
				return err
			}

			fmt.Println(SuccessStyle().Render("Saved " + name + "."))
			return nil
		}
	}
}

func (ui *EditorUI) runForm(name *string, streaming *bool, command, url, argsText, envText *string, agents *[]string) (string, error) {
	var agentOptions []huh.Option[string]
	selected := make(map[string]bool)
	for _, agent := range *agents {
		selected[agent] = true
	}
	for _, agent := range ui.editor.AvailableAgents() {
		agentOptions = append(agentOptions, huh.NewOption(agent, agent).Selected(selected[agent]))
	}

	var action string

	identity := huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(name),
		huh.NewSelect[bool]().
			Title("Transport").
			Options(
				huh.NewOption("stdio - run a local command", false),
				huh.NewOption("streaming - connect to a URL", true),
			).
			Value(streaming),
	)

	stdioFields := huh.NewGroup(
		huh.NewInput().
			Title("Command").
			Value(command),
		huh.NewText().
			Title("Arguments (one per line)").
			Value(argsText),
		huh.NewText().
			Title("Environment variables (KEY=VALUE, one per line)").
			Value(envText),
	).WithHideFunc(func() bool { return *streaming })

	streamingFields := huh.NewGroup(
		huh.NewInput().
			Title("URL").
			Placeholder("http://localhost:8080/mcp").
			Value(url),
	).WithHideFunc(func() bool { return !*streaming })

	closing := huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Enabled for agents").
			Options(agentOptions...).
			Value(agents),
		huh.NewSelect[string]().
			Title("Action").
			Options(
				huh.NewOption("Save", formActionSave),
				huh.NewOption("Delete server", formActionDelete),
				huh.NewOption("Back without saving", formActionBack),
			).
			Value(&action),
	)

	form := huh.NewForm(identity, stdioFields, streamingFields, closing).WithTheme(ui.theme)
	if err := form.Run(); err != nil {
		return "", err
	}
	return action, nil
}

func (ui *EditorUI) confirmDelete(name string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the MCP server '%s'?", name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(ui.theme)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// applyBuffers replays the form values through the editor operations.
func (ui *EditorUI) applyBuffers(name string, streaming bool, command, url, argsText, envText string, agents []string) {
	ui.editor.SetName(name)

	transport := models.TransportStdio
	if streaming {
		transport = models.TransportStreaming
	}
	ui.editor.SetTransport(transport)
	ui.editor.SetCommand(command)
	ui.editor.SetURL(url)

	for range ui.editor.Form().Args {
		ui.editor.RemoveArgument(0)
	}
	for _, line := range splitLines(argsText) {
		ui.editor.AddArgument(line)
	}

	for range ui.editor.Form().Env {
		ui.editor.RemoveEnvVar(0)
	}
	for _, line := range splitLines(envText) {
		key, value, _ := strings.Cut(line, "=")
		ui.editor.AddEnvVar(key, value)
	}

	enabled := make(map[string]bool, len(agents))
	for _, agent := range agents {
		enabled[agent] = true
	}
	for _, agent := range ui.editor.AvailableAgents() {
		ui.editor.SetAgentEnabled(agent, enabled[agent])
	}
}

func envToText(entries []editor.EnvEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Key+"="+entry.Value)
	}
	return strings.Join(lines, "\n")
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
