package cli

import (
	"pocdesk/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active login context, set after authentication.
	Profile domain.UserProfile
	Flags   *domain.PermissionFlags

	// Terminal dimensions
	Width  int
	Height int
}

// LoggedIn reports whether a profile is active.
func (s *SharedState) LoggedIn() bool {
	return s.Profile.EmployeeID != ""
}

// AdminScope reports whether record fetches should ask for the org-wide
// record set. The backend still enforces the flag server-side.
func (s *SharedState) AdminScope() bool {
	return s.Flags != nil && s.Flags.SalesAccess
}

// SetLogin installs the profile after authentication.
func (s *SharedState) SetLogin(p domain.UserProfile) {
	s.Profile = p
	s.Flags = nil
}

// ClearLogin resets login context on logout.
func (s *SharedState) ClearLogin() {
	s.Profile = domain.UserProfile{}
	s.Flags = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
