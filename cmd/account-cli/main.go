package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepChoosingAction step = iota
	stepEnteringFields
	stepSubmitting
	stepComplete
)

type action struct {
	label  string
	path   string
	fields []field
}

type field struct {
	key    string
	prompt string
	secret bool
}

var actions = []action{
	{
		label: "Log in",
		path:  "/api/v1/auth/login",
		fields: []field{
			{key: "email", prompt: "Email"},
			{key: "password", prompt: "Password", secret: true},
		},
	},
	{
		label: "Sign up",
		path:  "/api/v1/auth/signup",
		fields: []field{
			{key: "fullName", prompt: "Full name"},
			{key: "email", prompt: "Email"},
			{key: "password", prompt: "Password", secret: true},
			{key: "role", prompt: "Role (supervisor or member)"},
			{key: "companyName", prompt: "Company name"},
		},
	},
	{
		label: "Forgot password",
		path:  "/api/v1/auth/forgot-password",
		fields: []field{
			{key: "email", prompt: "Email"},
		},
	},
}

// envelope mirrors the server's response shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *struct {
		Token    string `json:"token"`
		ID       string `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"user"`
}

type model struct {
	baseURL      string
	step         step
	cursor       int
	action       *action
	fieldIndex   int
	values       map[string]string
	currentInput string
	message      string
	quitting     bool
}

type responseMsg envelope
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(baseURL string) model {
	return model{
		baseURL: strings.TrimRight(baseURL, "/"),
		step:    stepChoosingAction,
		values:  map[string]string{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func submit(baseURL string, a action, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		jsonData, err := json.Marshal(values)
		if err != nil {
			return errMsg{err}
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+a.path, bytes.NewBuffer(jsonData))
		if err != nil {
			return errMsg{err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		var result envelope
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)}
		}
		return responseMsg(result)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step != stepEnteringFields {
				m.quitting = true
				return m, tea.Quit
			}
			m.typeKey(msg)

		case "up", "k":
			if m.step == stepChoosingAction && m.cursor > 0 {
				m.cursor--
			} else if m.step == stepEnteringFields {
				m.typeKey(msg)
			}

		case "down", "j":
			if m.step == stepChoosingAction && m.cursor < len(actions)-1 {
				m.cursor++
			} else if m.step == stepEnteringFields {
				m.typeKey(msg)
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepChoosingAction:
				m.action = &actions[m.cursor]
				m.fieldIndex = 0
				m.values = map[string]string{}
				m.message = ""
				m.step = stepEnteringFields

			case stepEnteringFields:
				f := m.action.fields[m.fieldIndex]
				m.values[f.key] = m.currentInput
				m.currentInput = ""
				m.fieldIndex++
				if m.fieldIndex == len(m.action.fields) {
					m.step = stepSubmitting
					m.message = "Contacting server..."
					return m, submit(m.baseURL, *m.action, m.values)
				}

			case stepComplete:
				m.step = stepChoosingAction
				m.message = ""
			}

		default:
			if m.step == stepEnteringFields {
				m.typeKey(msg)
			}
		}

	case responseMsg:
		m.step = stepComplete
		if !msg.Success {
			m.message = errorStyle.Render("✗ " + msg.Message)
			return m, nil
		}
		if msg.User != nil {
			m.message = successStyle.Render(fmt.Sprintf("✓ Signed in as %s (%s)", msg.User.FullName, msg.User.Role)) +
				"\n\nToken:\n" + inputStyle.Render(msg.User.Token)
		} else {
			m.message = successStyle.Render("✓ " + msg.Message)
		}

	case errMsg:
		m.step = stepComplete
		m.message = errorStyle.Render("✗ " + msg.err.Error())
	}

	return m, nil
}

// typeKey appends printable input; arrows and other control keys are ignored.
func (m *model) typeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		m.currentInput += string(msg.Runes)
	case tea.KeySpace:
		m.currentInput += " "
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Account Tool\n\n"))

	switch m.step {
	case stepChoosingAction:
		s.WriteString(promptStyle.Render("What do you want to do?\n\n"))
		for i, a := range actions {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(a.label)))
		}
		s.WriteString("\nUse ↑/↓, Enter to select, q to quit\n")

	case stepEnteringFields:
		f := m.action.fields[m.fieldIndex]
		s.WriteString(promptStyle.Render(f.prompt + ":\n"))
		shown := m.currentInput
		if f.secret {
			shown = strings.Repeat("•", len(m.currentInput))
		}
		s.WriteString(inputStyle.Render("> " + shown))
		s.WriteString("\n\nPress Enter\n")

	case stepSubmitting:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString("\nPress Enter to continue, q to quit\n")
	}

	return s.String()
}

func main() {
	defaultURL := os.Getenv("ACCOUNT_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3536"
	}
	baseURL := flag.String("url", defaultURL, "account server base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(*baseURL))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
