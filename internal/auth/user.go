package auth

import (
	"fmt"
	"strings"
	"time"
)

// User is the identity shared by every account variant. The username is the
// sole identity key: two users with the same username are the same entity.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"` // bcrypt hash
	Active   bool   `json:"active"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	LastLogin int64 `json:"lastLogin,omitempty"`
}

func newUser(username, email, password string) User {
	return User{
		Username:  username,
		Email:     strings.TrimSpace(email),
		Password:  password,
		Active:    true,
		CreatedAt: time.Now().UnixNano(),
	}
}

// Key satisfies the campaign Member/identity contract.
func (u *User) Key() string { return u.Username }

func (u *User) Base() *User { return u }

func (u *User) StampLogin() {
	u.LastLogin = time.Now().UnixNano()
}

// UpdateInfo fills only the fields that were provided.
func (u *User) UpdateInfo(email, hashedPass string) {
	if email != "" {
		u.Email = strings.TrimSpace(email)
	}
	if hashedPass != "" {
		u.Password = hashedPass
	}
}

func (u *User) Check() error {
	if u.Username == "" {
		return ErrInvalidUsername
	}
	if len(u.Email) < 6 /* a@a.ab */ || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func (u *User) identitySummary(scope Scope) string {
	last := "Never"
	if u.LastLogin != 0 {
		last = time.Unix(0, u.LastLogin).Format("2006-01-02")
	}
	status := "Inactive"
	if u.Active {
		status = "Active"
	}
	return fmt.Sprintf("Username: %s\nEmail: %s\nRole: %s\nAccount Status: %s\nCreated: %s\nLast Login: %s",
		u.Username, u.Email, scope, status, time.Unix(0, u.CreatedAt).Format("2006-01-02"), last)
}

// Profile is the closed set of account variants. Reporting goes through
// ProfileSummary instead of type switches.
type Profile interface {
	Key() string
	Base() *User
	Scope() Scope
	ProfileSummary() string
}

// DisplayName returns what documents should call a profile: the company name
// for brands, the username for everyone else.
func DisplayName(p Profile) string {
	if b, ok := p.(*Brand); ok && b.CompanyName != "" {
		return b.CompanyName
	}
	return p.Key()
}

// Admin accounts carry no campaign relationships.
type Admin struct {
	User
}

func NewAdmin(username, email, hashedPass string) *Admin {
	return &Admin{User: newUser(username, email, hashedPass)}
}

func (a *Admin) Scope() Scope { return AdminScope }

func (a *Admin) ProfileSummary() string {
	return a.identitySummary(AdminScope)
}
