package cli

import "github.com/mlindner/asmtrack/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID     string
	ActiveProjectNumber string
	ActiveDescription   string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProjectFrom sets the active project context from an
// already-loaded project.
func (s *SharedState) SetActiveProjectFrom(p *domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveProjectNumber = p.Number
	s.ActiveDescription = p.Description
}

// ClearProjectContext resets the active project state.
func (s *SharedState) ClearProjectContext() {
	s.ActiveProjectID = ""
	s.ActiveProjectNumber = ""
	s.ActiveDescription = ""
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
