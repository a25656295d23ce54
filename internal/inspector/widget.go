package inspector

// Widget is a read-only view of one node in the host's widget tree.
// Accessors that do not apply to a widget's role return zero values.
type Widget interface {
	Role() Role
	Children() []Widget

	// Text is the displayed text of text blocks
	Text() string
	// HintText is the placeholder of search and input boxes
	HintText() string
	// Title is the title of windows
	Title() string

	TabLabel() string
	TabRole() TabRole
	IsForeground() bool
	// TabManager identifies the tab manager owning a dock tab
	TabManager() string

	// NodeTitle is the menu title of graph nodes
	NodeTitle() string

	// SelectedActorClasses and SelectedObjectClasses list the classes a
	// details view is editing.
	SelectedActorClasses() []string
	SelectedObjectClasses() []string
}

// EditorMode is one editor mode known to the level editor
type EditorMode struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Active     bool   `yaml:"active" json:"active"`
	ActiveTool string `yaml:"active_tool" json:"active_tool"`
}

// Host answers the questions the inspector asks about the running editor
type Host interface {
	// PathUnderCursor returns the widgets under the cursor, outermost
	// window first.
	PathUnderCursor() Path
	// MenuHostPath returns the path to the widget that opened the current
	// menu, or an empty path when no menu is open.
	MenuHostPath() Path
	// ToolTip returns the visible tooltip window, or nil
	ToolTip() Widget
	// IsMainWindow reports whether window is the editor's main frame
	IsMainWindow(window Widget) bool
	// EditorModes lists the level editor's modes ordered by priority
	EditorModes() []EditorMode
	// AssetEditorName returns the name of the asset editor owning a tab manager
	AssetEditorName(tabManager string) (string, bool)
}

// Path is a chain of widgets from a top-level window down to a leaf
type Path []Widget

// Valid reports whether the path holds any widget
func (p Path) Valid() bool {
	return len(p) > 0
}

// Window returns the top-level window of the path
func (p Path) Window() Widget {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Last returns the leaf widget of the path
func (p Path) Last() Widget {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Closest returns the widget nearest the leaf having one of roles
func (p Path) Closest(roles ...Role) Widget {
	for i := len(p) - 1; i >= 0; i-- {
		if hasRole(p[i], roles) {
			return p[i]
		}
	}
	return nil
}

// Outermost returns the widget nearest the window having one of roles
func (p Path) Outermost(roles ...Role) Widget {
	for _, w := range p {
		if hasRole(w, roles) {
			return w
		}
	}
	return nil
}

func hasRole(w Widget, roles []Role) bool {
	role := w.Role()
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// findDescendant returns the first descendant of w with role, searching
// depth first.
func findDescendant(w Widget, role Role) Widget {
	if w == nil {
		return nil
	}
	for _, child := range w.Children() {
		if child.Role() == role {
			return child
		}
		if found := findDescendant(child, role); found != nil {
			return found
		}
	}
	return nil
}

// findDescendants collects every descendant of w with role in depth-first order
func findDescendants(w Widget, role Role) []Widget {
	var out []Widget
	if w == nil {
		return out
	}
	for _, child := range w.Children() {
		if child.Role() == role {
			out = append(out, child)
		}
		out = append(out, findDescendants(child, role)...)
	}
	return out
}

// lastChildOf returns the last direct child of w having one of roles.
// Disabled entries wrap their block, so the block is a child of the leaf.
func lastChildOf(w Widget, roles ...Role) Widget {
	if w == nil {
		return nil
	}
	var found Widget
	for _, child := range w.Children() {
		if hasRole(child, roles) {
			found = child
		}
	}
	return found
}
