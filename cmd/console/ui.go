package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/adventure-engine/pkg/game"
)

const PlaceHolderText = "Type a command (go north, look, inventory)..."

var titleCaser = cases.Title(language.English)

type entryRole int

const (
	entryPlayer entryRole = iota
	entryEngine
	entryError
)

type transcriptEntry struct {
	role entryRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config        *ConsoleConfig
	client        *http.Client
	gameState     *game.State
	location      *LocationView
	transcript    []transcriptEntry
	gameViewport  viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	ready         bool
	width         int
	height        int
	err           error
	loading       bool
	finished      bool

	// World selection state
	showWorldModal bool
	worlds         []string
	worldMap       map[string]string
	selectedWorld  int
	loadingWorlds  bool

	// Quit confirmation state
	showQuitModal bool
}

type worldsLoadedMsg struct {
	worlds   []string
	worldMap map[string]string
	err      error
}

type gameCreatedMsg struct {
	gameState *game.State
	err       error
}

type commandResultMsg struct {
	input    string
	response *CommandResponse
	err      error
}

var (
	gamePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	engineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	gameVp := viewport.New(50, 20)
	gameVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:         cfg,
		client:         client,
		textarea:       ta,
		gameViewport:   gameVp,
		metaViewport:   metaVp,
		ready:          false,
		showWorldModal: true,
		loadingWorlds:  true,
		selectedWorld:  0,
	}
}

// writeGameContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeGameContent() {
	gameWidth := m.gameViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE ENGINE") + "\n\n")
	content.WriteString("Type commands below to explore the world.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(gameWidth-6, 1))) + "\n\n")

	for _, e := range m.transcript {
		switch e.role {
		case entryPlayer:
			content.WriteString(playerStyle.Render("> "+e.text) + "\n\n")
		case entryEngine:
			content.WriteString(engineStyle.Render(wordwrap.String(e.text, gameWidth)) + "\n\n")
		case entryError:
			content.WriteString(errorStyle.Render("Error: "+wordwrap.String(e.text, gameWidth)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(loadingStyle.Render("...") + "\n")
	}

	m.gameViewport.SetContent(content.String())
	m.gameViewport.GotoBottom()
}

// writeMetadata renders the side panel from the current location view.
func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("WORLD") + "\n\n")

	if m.gameState != nil {
		content.WriteString("Game ID:\n")
		content.WriteString(m.gameState.ID.String()[:8] + "...\n\n")

		content.WriteString("World:\n")
		content.WriteString(m.gameState.WorldFile + "\n\n")
	}

	if m.location != nil {
		content.WriteString("Location:\n")
		content.WriteString(locationStyle.Render(m.location.Title) + "\n\n")

		if len(m.location.Exits) > 0 {
			content.WriteString("Exits:\n")
			for _, dir := range m.location.Exits {
				content.WriteString("• " + titleCaser.String(dir) + "\n")
			}
			content.WriteString("\n")
		}

		if len(m.location.Items) > 0 {
			content.WriteString("Items here:\n")
			for _, item := range m.location.Items {
				content.WriteString("• " + item + "\n")
			}
			content.WriteString("\n")
		}

		if m.location.Image != "" {
			content.WriteString("Scene:\n")
			content.WriteString(m.location.Image + "\n\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• go <direction>\n")
	content.WriteString("• look\n")
	content.WriteString("• inventory\n")
	content.WriteString("• quit\n")
	content.WriteString("• Ctrl+C: Exit\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showWorldModal {
		return m.loadWorlds()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.gameViewport, vpCmd = m.gameViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.writeGameContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		if m.finished {
			return m, tea.Quit
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.transcript = append(m.transcript, transcriptEntry{entryPlayer, input})
			m.writeGameContent()
			return m, m.runCommand(input)
		}

	case commandResultMsg:
		m.loading = false
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{entryError, msg.err.Error()})
		} else {
			if msg.response.Outcome.Message != "" {
				m.transcript = append(m.transcript, transcriptEntry{entryEngine, msg.response.Outcome.Message})
			}
			m.location = msg.response.Location
			if msg.response.Outcome.Terminated() {
				m.finished = true
				m.transcript = append(m.transcript, transcriptEntry{entryEngine, "Press any key to exit."})
				m.textarea.Blur()
			}
		}
		m.writeGameContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) layout() {
	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	m.gameViewport.Width = gameWidth - 2
	m.gameViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(gameWidth - 4)
}

func (m ConsoleUI) runCommand(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendCommand(m.client, m.config.APIBaseURL, m.gameState.ID, input)
		return commandResultMsg{input, resp, err}
	}
}

func (m ConsoleUI) loadWorlds() tea.Cmd {
	return func() tea.Msg {
		titles, worldMap, err := listWorlds(m.client, m.config.APIBaseURL)
		return worldsLoadedMsg{titles, worldMap, err}
	}
}

func (m ConsoleUI) createGameFromWorld(worldFile string) tea.Cmd {
	return func() tea.Msg {
		gs, err := createGame(m.client, m.config.APIBaseURL, worldFile)
		return gameCreatedMsg{gs, err}
	}
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case worldsLoadedMsg:
		m.loadingWorlds = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.worlds = msg.worlds
			m.worldMap = msg.worldMap
		}

	case gameCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.gameState = msg.gameState
			m.showWorldModal = false
			if m.width > 0 && m.height > 0 {
				m.layout()
			}
			m.writeGameContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			m.ready = true
			// Open with a look so the player sees where they are.
			m.loading = true
			return m, tea.Batch(textarea.Blink, m.runCommand("look"))
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingWorlds {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			if len(m.worlds) > 0 {
				title := m.worlds[m.selectedWorld]
				m.loading = true
				return m, m.createGameFromWorld(m.worldMap[title])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingWorlds {
		content.WriteString(modalTitleStyle.Render("Loading Worlds..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching available world documents..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load worlds: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Creating Game..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Setting up your adventure..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")

		for i, title := range m.worlds {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", title)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", title)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.gameViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(gameWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)
}
