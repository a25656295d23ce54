package inspector

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Node is a widget captured in a snapshot file
type Node struct {
	ID              string   `yaml:"id,omitempty"`
	Type            string   `yaml:"type"`
	Label           string   `yaml:"label,omitempty"`
	Hint            string   `yaml:"hint,omitempty"`
	WindowTitle     string   `yaml:"title,omitempty"`
	Content         string   `yaml:"text,omitempty"`
	Tab             string   `yaml:"tab_role,omitempty"`
	Foreground      bool     `yaml:"foreground,omitempty"`
	Manager         string   `yaml:"tab_manager,omitempty"`
	GraphNodeTitle  string   `yaml:"node_title,omitempty"`
	SelectedActors  []string `yaml:"selected_actors,omitempty"`
	SelectedObjects []string `yaml:"selected_objects,omitempty"`
	Nodes           []*Node  `yaml:"children,omitempty"`

	role    Role
	tabRole TabRole
}

func (n *Node) Role() Role                      { return n.role }
func (n *Node) Text() string                    { return n.Content }
func (n *Node) HintText() string                { return n.Hint }
func (n *Node) Title() string                   { return n.WindowTitle }
func (n *Node) TabLabel() string                { return n.Label }
func (n *Node) TabRole() TabRole                { return n.tabRole }
func (n *Node) IsForeground() bool              { return n.Foreground }
func (n *Node) TabManager() string              { return n.Manager }
func (n *Node) NodeTitle() string               { return n.GraphNodeTitle }
func (n *Node) SelectedActorClasses() []string  { return n.SelectedActors }
func (n *Node) SelectedObjectClasses() []string { return n.SelectedObjects }

// Children returns the child widgets
func (n *Node) Children() []Widget {
	out := make([]Widget, len(n.Nodes))
	for i, child := range n.Nodes {
		out[i] = child
	}
	return out
}

// resolve derives roles and indexes ids for the subtree
func (n *Node) resolve(index map[string]*Node) error {
	n.role = RoleOf(n.Type)
	tabRole, ok := ParseTabRole(n.Tab)
	if !ok {
		return fmt.Errorf("widget %q: unknown tab role %q", n.ID, n.Tab)
	}
	n.tabRole = tabRole

	if n.ID != "" {
		if _, exists := index[n.ID]; exists {
			return fmt.Errorf("duplicate widget id %q", n.ID)
		}
		index[n.ID] = n
	}
	for _, child := range n.Nodes {
		if err := child.resolve(index); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot is a captured editor UI state. It answers the inspector's
// questions without a live editor.
type Snapshot struct {
	Cursor       string            `yaml:"cursor"`
	MenuHost     string            `yaml:"menu_host,omitempty"`
	MainWindow   string            `yaml:"main_window,omitempty"`
	Tip          *Node             `yaml:"tooltip,omitempty"`
	Modes        []EditorMode      `yaml:"modes,omitempty"`
	AssetEditors map[string]string `yaml:"asset_editors,omitempty"`
	Windows      []*Node           `yaml:"windows"`

	index map[string]*Node
}

// ParseSnapshot decodes a YAML or JSON snapshot
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	s.index = make(map[string]*Node)
	for _, window := range s.Windows {
		if err := window.resolve(s.index); err != nil {
			return nil, err
		}
	}
	if s.Tip != nil {
		if err := s.Tip.resolve(make(map[string]*Node)); err != nil {
			return nil, err
		}
	}
	if s.Cursor != "" {
		if _, ok := s.index[s.Cursor]; !ok {
			return nil, fmt.Errorf("cursor widget %q not found", s.Cursor)
		}
	}
	return &s, nil
}

// LoadSnapshot reads a snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// pathTo returns the chain from a window down to the widget with id
func (s *Snapshot) pathTo(id string) Path {
	if id == "" {
		return nil
	}
	for _, window := range s.Windows {
		if path := searchPath(window, id, nil); path != nil {
			return path
		}
	}
	return nil
}

func searchPath(n *Node, id string, prefix Path) Path {
	path := append(prefix[:len(prefix):len(prefix)], n)
	if n.ID == id {
		return path
	}
	for _, child := range n.Nodes {
		if found := searchPath(child, id, path); found != nil {
			return found
		}
	}
	return nil
}

// PathUnderCursor implements Host
func (s *Snapshot) PathUnderCursor() Path {
	return s.pathTo(s.Cursor)
}

// MenuHostPath implements Host
func (s *Snapshot) MenuHostPath() Path {
	return s.pathTo(s.MenuHost)
}

// ToolTip implements Host
func (s *Snapshot) ToolTip() Widget {
	if s.Tip == nil {
		return nil
	}
	return s.Tip
}

// IsMainWindow implements Host
func (s *Snapshot) IsMainWindow(window Widget) bool {
	node, ok := window.(*Node)
	return ok && s.MainWindow != "" && node.ID == s.MainWindow
}

// EditorModes implements Host
func (s *Snapshot) EditorModes() []EditorMode {
	return s.Modes
}

// AssetEditorName implements Host
func (s *Snapshot) AssetEditorName(tabManager string) (string, bool) {
	name, ok := s.AssetEditors[tabManager]
	return name, ok
}
