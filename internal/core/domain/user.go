package domain

// User is the signed-in visitor as returned by the remote service.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName prefers the user's name and falls back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Session is either anonymous (User == nil) or authenticated.
type Session struct {
	User *User `json:"user,omitempty"`
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool { return s.User != nil }

// SignIn returns an authenticated session for u.
func (s Session) SignIn(u User) Session { return Session{User: &u} }

// SignOut returns an anonymous session. It never contacts the remote service.
func (s Session) SignOut() Session { return Session{} }

// Credentials carry a password sign-up or sign-in request.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// AuthMode selects the password endpoint.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)
