// Package auth holds the login page state: which panel is active, whether
// the admin dialog is open, and the local checks run before a form is sent.
package auth

import (
	"errors"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// Panel is one of the two mutually exclusive forms of the login page.
type Panel string

const (
	PanelLogin    Panel = "login"
	PanelRegister Panel = "register"
)

// ParsePanel favours the login panel for anything it does not recognise.
func ParsePanel(s string) Panel {
	if Panel(s) == PanelRegister {
		return PanelRegister
	}
	return PanelLogin
}

// ErrPasswordMismatch blocks a registration before any request is sent.
var ErrPasswordMismatch = errors.New("password and confirmation differ")

const MsgPasswordMismatch = "Passwords do not match."

// RegisterForm is the register panel as posted.
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// Validate only checks that the password was typed twice the same way;
// every other rule belongs to the server.
func (f RegisterForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

func (f RegisterForm) Registration() model.Registration {
	return model.Registration{Username: f.Username, Password: f.Password, Email: f.Email, Phone: f.Phone}
}

// Blank drops the passwords before the form is shown again.
func (f RegisterForm) Blank() RegisterForm {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

// LoginForm is used by both the client and the admin login.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (f LoginForm) Credentials() model.Credentials {
	return model.Credentials{Username: f.Username, Password: f.Password}
}

// Page is the state of the login page.  Exactly one panel is active; the
// admin dialog is shown on top of it when AdminOpen is set.
type Page struct {
	Panel         Panel
	AdminOpen     bool
	Register      RegisterForm
	LoginUsername string
	AdminUsername string
	LoginError    string
	RegisterError string
	AdminError    string
	Notice        string
}

// NewPage opens the page on the given panel.
func NewPage(panel Panel, adminOpen bool) Page {
	return Page{Panel: panel, AdminOpen: adminOpen}
}

func (p Page) LoginActive() bool    { return p.Panel != PanelRegister }
func (p Page) RegisterActive() bool { return p.Panel == PanelRegister }
