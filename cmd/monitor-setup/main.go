package main

import (
	"fmt"
	"os"
	"strings"

	"monitoreo-server/confs"
	"monitoreo-server/db"
	"monitoreo-server/repositories"
	"monitoreo-server/usecases"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

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
	stepConnecting step = iota
	stepEnteringOrgName
	stepEnteringOrgEmail
	stepEnteringAdminEmail
	stepEnteringAdminPassword
	stepConfirmingPassword
	stepCreating
	stepComplete
)

type connectedMsg struct {
	database db.Database
	users    int64
}
type setupDoneMsg struct {
	email string
}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type model struct {
	step         step
	database     db.Database
	orgName      string
	orgEmail     string
	adminEmail   string
	adminPass    string
	currentInput string
	message      string
	quitting     bool
}

func initialModel() model {
	return model{step: stepConnecting}
}

func (m model) Init() tea.Cmd {
	return connectAndSeed
}

func connectAndSeed() tea.Msg {
	if err := confs.LoadConfig(); err != nil {
		return errMsg{fmt.Errorf("config: %w", err)}
	}

	database, err := db.Connect()
	if err != nil {
		return errMsg{fmt.Errorf("database: %w", err)}
	}

	rbac := repositories.NewRBACPgRepository(database)
	if err := usecases.SeedRolesAndModules(rbac); err != nil {
		return errMsg{fmt.Errorf("seeding roles: %w", err)}
	}

	users := repositories.NewUserPgRepository(database)
	count, err := users.CountUsers()
	if err != nil {
		return errMsg{fmt.Errorf("counting users: %w", err)}
	}

	return connectedMsg{database: database, users: count}
}

func createAdmin(database db.Database, orgName, orgEmail, email, password string) tea.Cmd {
	return func() tea.Msg {
		users := repositories.NewUserPgRepository(database)
		accounts := usecases.NewAccountUseCase(database, users)

		user, err := accounts.Register(usecases.RegisterInput{
			Email:             email,
			Password:          password,
			OrganizationName:  orgName,
			OrganizationEmail: orgEmail,
		})
		if err != nil {
			return errMsg{err}
		}

		user.IsSuperuser = true
		if err := users.Update(user); err != nil {
			return errMsg{fmt.Errorf("marking superuser: %w", err)}
		}
		if err := users.AssignRole(user.ID, usecases.RoleAdmin); err != nil {
			return errMsg{fmt.Errorf("assigning admin role: %w", err)}
		}

		return setupDoneMsg{email: user.Email}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			switch m.step {
			case stepEnteringOrgName, stepEnteringOrgEmail, stepEnteringAdminEmail,
				stepEnteringAdminPassword, stepConfirmingPassword:
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringOrgName:
				if m.currentInput != "" {
					m.orgName = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringOrgEmail
				}

			case stepEnteringOrgEmail:
				if m.currentInput != "" {
					m.orgEmail = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringAdminEmail
				}

			case stepEnteringAdminEmail:
				if m.currentInput != "" {
					m.adminEmail = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringAdminPassword
				}

			case stepEnteringAdminPassword:
				if m.currentInput != "" {
					m.adminPass = m.currentInput
					m.currentInput = ""
					m.step = stepConfirmingPassword
				}

			case stepConfirmingPassword:
				if m.currentInput != m.adminPass {
					m.currentInput = ""
					m.adminPass = ""
					m.message = errorStyle.Render("Passwords do not match, try again")
					m.step = stepEnteringAdminPassword
					return m, nil
				}
				m.currentInput = ""
				m.step = stepCreating
				m.message = "Creating organization and admin account..."
				return m, createAdmin(m.database, m.orgName, m.orgEmail, m.adminEmail, m.adminPass)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case connectedMsg:
		m.database = msg.database
		if msg.users > 0 {
			m.message = successStyle.Render(fmt.Sprintf("Database ready, %d account(s) already exist", msg.users))
		} else {
			m.message = successStyle.Render("Database ready")
		}
		m.step = stepEnteringOrgName

	case setupDoneMsg:
		m.step = stepComplete
		m.message = successStyle.Render(fmt.Sprintf("Setup complete!\nSuperuser %s can now sign in.", msg.email))

	case errMsg:
		switch m.step {
		case stepConnecting:
			m.message = errorStyle.Render(msg.err.Error())
			m.quitting = true
			return m, tea.Quit
		default:
			// Validation errors send the operator back to the org form.
			m.message = errorStyle.Render(msg.err.Error())
			m.step = stepEnteringOrgName
			m.currentInput = m.orgName
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		if m.message != "" {
			return m.message + "\n"
		}
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Monitoreo Setup Tool\n\n"))

	switch m.step {
	case stepConnecting:
		s.WriteString("Connecting to database and seeding roles...\n")

	case stepEnteringOrgName:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Organization name:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringOrgEmail:
		s.WriteString(promptStyle.Render("Organization contact email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringAdminEmail:
		s.WriteString(promptStyle.Render("Admin email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringAdminPassword:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Admin password (min 8 chars, upper, lower, digit):\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepConfirmingPassword:
		s.WriteString(promptStyle.Render("Confirm password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepCreating:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
