package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginField int

const (
	loginFieldUsername loginField = iota
	loginFieldPassword
)

type LoginForm struct {
	username textinput.Model
	password textinput.Model
	focused  loginField
}

func NewLoginForm() *LoginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	return &LoginForm{username: username, password: password}
}

func (f *LoginForm) Username() string {
	return strings.TrimSpace(f.username.Value())
}

func (f *LoginForm) Password() string {
	return f.password.Value()
}

func (f *LoginForm) Reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.focus(loginFieldUsername)
}

func (f *LoginForm) NextField() {
	if f.focused == loginFieldUsername {
		f.focus(loginFieldPassword)
	} else {
		f.focus(loginFieldUsername)
	}
}

func (f *LoginForm) focus(field loginField) {
	f.focused = field
	if field == loginFieldUsername {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.password.Focus()
		f.username.Blur()
	}
}

func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focused == loginFieldUsername {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

func (f *LoginForm) View(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(styles.FieldLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(f.username.View())
	b.WriteString("\n")
	b.WriteString(styles.FieldLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	return b.String()
}
