package session

import "context"

// View names a screen of the console.
type View string

const (
	ViewLogin          View = "login"
	ViewForgotPassword View = "forgot-password"
	ViewSignup         View = "signup"
	ViewDashboard      View = "dashboard"
	ViewUsers          View = "users"
	ViewVideos         View = "videos"
	ViewProfile        View = "profile"
)

// IsProtected reports whether v requires a session token.
func IsProtected(v View) bool {
	switch v {
	case ViewDashboard, ViewUsers, ViewVideos, ViewProfile:
		return true
	default:
		return false
	}
}

// TokenSource is the part of Store the guard depends on.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Guard gates navigation to protected views.
type Guard struct {
	tokens TokenSource
}

func NewGuard(tokens TokenSource) *Guard {
	return &Guard{tokens: tokens}
}

// CanActivate re-reads the token on every call. When navigation is refused
// the second result is the view to go to instead.
func (g *Guard) CanActivate(ctx context.Context, v View) (bool, View) {
	if !IsProtected(v) {
		return true, v
	}
	token, err := g.tokens.Token(ctx)
	if err != nil || token == "" {
		return false, ViewLogin
	}
	return true, v
}
