package admin

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Gate states.
const (
	StateLoggedOut = "logged_out"
	StateLoggedIn  = "logged_in"
)

// Placeholder credential used when no password hash is configured.
// It is not a security boundary.
const (
	StubUsername = "admin"
	StubPassword = "admin"
)

// MsgIncorrect is the generic error shown for any rejected credential.
const MsgIncorrect = "Incorrect username or password"

// Domain errors
var (
	ErrIncorrectCredential = errors.New(MsgIncorrect)
	ErrEmptyHash           = errors.New("password hash cannot be empty")
)

// Credential decides whether a submitted username/password pair opens the gate.
type Credential interface {
	Username() string
	Check(username, password string) bool
	// IsStub reports whether this credential is a placeholder.
	IsStub() bool
}

// StubCredential compares against literal strings.
// Anyone who can read the configuration can log in.
type StubCredential struct {
	User     string
	Password string
}

// NewStubCredential returns the hardcoded admin/admin placeholder.
func NewStubCredential() StubCredential {
	return StubCredential{User: StubUsername, Password: StubPassword}
}

// Username returns the expected username.
func (c StubCredential) Username() string { return c.User }

// IsStub always reports true.
func (c StubCredential) IsStub() bool { return true }

// Check compares both fields literally.
// INVARIANT: c is not mutated
func (c StubCredential) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// HashedCredential verifies the password against a bcrypt hash.
type HashedCredential struct {
	User string
	Hash string
}

// NewHashedCredential builds a bcrypt-backed credential.
// PRE: hash was produced by bcrypt.GenerateFromPassword
// POST: Returns ErrEmptyHash if hash is blank
func NewHashedCredential(user, hash string) (HashedCredential, error) {
	if hash == "" {
		return HashedCredential{}, ErrEmptyHash
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return HashedCredential{}, err
	}
	return HashedCredential{User: user, Hash: hash}, nil
}

// Username returns the expected username.
func (c HashedCredential) Username() string { return c.User }

// IsStub always reports false.
func (c HashedCredential) IsStub() bool { return false }

// Check verifies username and bcrypt password.
// INVARIANT: c is not mutated
func (c HashedCredential) Check(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.User)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)) == nil
}

// Gate is the LoggedOut/LoggedIn state machine shared by the booking
// widget toggle and the admin page.
type Gate struct {
	State string
	Error string
}

// NewGate returns a gate in the LoggedOut state.
func NewGate() Gate {
	return Gate{State: StateLoggedOut}
}

// LoggedIn reports whether admin actions are exposed.
func (g Gate) LoggedIn() bool {
	return g.State == StateLoggedIn
}

// Submit checks a credential. A blank username means the password-only
// prompt was used and the credential's own username applies.
// POST: LoggedIn with Error cleared on success; otherwise LoggedOut with the generic error
func (g *Gate) Submit(cred Credential, username, password string) error {
	if username == "" {
		username = cred.Username()
	}
	if !cred.Check(username, password) {
		g.State = StateLoggedOut
		g.Error = MsgIncorrect
		return ErrIncorrectCredential
	}
	g.State = StateLoggedIn
	g.Error = ""
	return nil
}

// Logout returns the gate to LoggedOut.
// POST: State is LoggedOut, Error cleared
func (g *Gate) Logout() {
	g.State = StateLoggedOut
	g.Error = ""
}
