package inspector

import (
	"fmt"
)

const defaultItemDescriptor = "control"

// blockedModeIDs are modes too generic to name in a description
var blockedModeIDs = map[string]bool{
	"EM_Default":                true,
	"EditMode.SubTrackEditMode": true,
}

// queryState accumulates what one inspection learned about the cursor
type queryState struct {
	host    Host
	toolTip string

	picked     Widget
	isUIWidget bool
	isObject   bool
	inOutliner bool
}

// item is the running best guess of the named thing under the cursor
type item struct {
	name       string
	descriptor string
	// hint is shared between the search and console box classifiers
	hint string
}

// itemClassifier inspects path and overwrites it on a match
type itemClassifier func(path Path, qs *queryState, it *item)

// itemClassifiers run in order. Later matches overwrite earlier ones.
var itemClassifiers = []itemClassifier{
	classifyGraphNode,
	classifyButton,
	classifyToolBarButton,
	classifySearchBox,
	classifyConsoleBox,
	classifyMenuItem,
	classifyPropertyRow,
	classifyBreadcrumb,
	classifyAssetTile,
	classifyOutliner,
}

func classifyGraphNode(path Path, qs *queryState, it *item) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Role() != RoleGraphEditor {
			continue
		}
		for j := i; j+1 < len(path); j++ {
			if path[j].Role() != RoleGraphPanel {
				continue
			}
			node := path[j+1]
			// overview stack nodes carry no useful title
			if node.Role() == RoleGraphOverviewNode {
				continue
			}
			it.name = node.NodeTitle()
			it.descriptor = "graph node"
			qs.picked = node
		}
	}
}

// useTextOrToolTip names the item after its text, falling back to the
// current tooltip. It reports whether either was available.
func useTextOrToolTip(w Widget, qs *queryState, it *item, descriptor string) bool {
	text := findText(w)
	if text == "" && qs.toolTip == "" {
		return false
	}
	if text != "" {
		it.name = text
	} else {
		it.name = qs.toolTip
	}
	it.descriptor = descriptor
	qs.picked = w
	qs.isUIWidget = true
	return true
}

func classifyButton(path Path, qs *queryState, it *item) {
	button := path.Outermost(RoleButton)
	if button == nil {
		button = lastChildOf(path.Last(), RoleButton)
	}
	if button != nil {
		useTextOrToolTip(button, qs, it, "button")
	}
}

func classifyToolBarButton(path Path, qs *queryState, it *item) {
	block := path.Closest(RoleToolBarButton)
	if block == nil {
		block = lastChildOf(path.Last(), RoleToolBarButton)
	}
	if block != nil {
		useTextOrToolTip(block, qs, it, "toolbar button")
	}
}

func classifySearchBox(path Path, qs *queryState, it *item) {
	box := path.Closest(RoleSearchBox)
	if box != nil {
		it.hint = box.HintText()
	} else {
		box = path.Closest(RoleFilterSearchBox)
		if box != nil {
			if editable := findDescendant(box, RoleEditableText); editable != nil {
				it.hint = editable.HintText()
			}
		}
	}
	if box == nil {
		return
	}

	it.name = orDefault(it.hint, "default")
	it.descriptor = "search box"
	qs.picked = box
	qs.isUIWidget = true
}

func classifyConsoleBox(path Path, qs *queryState, it *item) {
	box := path.Closest(RoleConsoleInput)
	if box == nil {
		return
	}
	if editable := findDescendant(box, RoleMultiLineEditableText); editable != nil {
		it.hint = editable.HintText()
	}

	it.name = orDefault(it.hint, "Console")
	it.descriptor = "input box"
	qs.picked = box
	qs.isUIWidget = true
}

// closestMenuItem returns the menu entry block under the cursor, if any
func closestMenuItem(path Path) Widget {
	if !path.Valid() {
		return nil
	}
	if entry := path.Closest(RoleMenuEntry); entry != nil {
		return entry
	}
	return lastChildOf(path.Last(), RoleMenuEntry)
}

func classifyMenuItem(path Path, qs *queryState, it *item) {
	entry := closestMenuItem(path)
	if entry == nil {
		return
	}
	if text := findText(entry); text != "" {
		it.name = text
		it.descriptor = "menu item"
		qs.picked = entry
		qs.isUIWidget = true
	}
}

func classifyPropertyRow(path Path, qs *queryState, it *item) {
	row := path.Closest(RoleDetailRow)
	if row == nil {
		return
	}
	if text := findText(findDescendant(row, RolePropertyName)); text != "" {
		it.name = text
		it.descriptor = "setting"
		qs.picked = row
	}
}

func classifyBreadcrumb(path Path, qs *queryState, it *item) {
	if path.Closest(RoleBreadcrumbTrail) == nil {
		return
	}
	button := path.Closest(RoleButton)
	if text := findText(button); text != "" {
		it.name = text
		it.descriptor = "navigation breadcrumb"
		qs.picked = button
		qs.isUIWidget = true
	}
}

func classifyAssetTile(path Path, qs *queryState, it *item) {
	tile := path.Closest(RoleAssetTile)
	if tile == nil {
		return
	}

	if thumbnail := path.Closest(RoleAssetThumbnail); thumbnail != nil {
		// thumbnails show the asset type, the tooltip carries the name
		if assetType := findText(thumbnail); assetType != "" {
			it.descriptor = fmt.Sprintf("%s asset", assetType)
		}
		if qs.toolTip != "" {
			it.name = qs.toolTip
		}
		qs.picked = thumbnail
		qs.isObject = true
		return
	}

	if text := findText(tile); text != "" {
		it.name = text
		it.descriptor = "asset folder"
		qs.picked = tile
		qs.isObject = true
	}
}

func classifyOutliner(path Path, qs *queryState, _ *item) {
	if path.Closest(RoleOutliner) != nil {
		qs.inOutliner = true
	}
}

// findItemName runs the classifiers and phrases the result
func findItemName(path Path, qs *queryState) string {
	if !path.Valid() {
		return ""
	}

	it := &item{descriptor: defaultItemDescriptor}
	for _, classify := range itemClassifiers {
		classify(path, qs, it)
	}

	if it.name == "" {
		return ""
	}
	return fmt.Sprintf(" the \"%s\" %s", it.name, it.descriptor)
}

// findTabName names the foreground panel tab of the closest tab stack.
// Stacks holding document-level tabs are editors, not panels.
func findTabName(path Path, qs *queryState) string {
	stack := path.Closest(RoleDockingTabStack)
	if stack == nil {
		return ""
	}

	var name string
	for _, tab := range findDescendants(stack, RoleDockTab) {
		if tab.TabRole().isDocumentLevel() {
			return ""
		}
		if tab.IsForeground() {
			qs.picked = stack
			name = tab.TabLabel()
		}
	}

	if name == "" {
		return ""
	}
	return fmt.Sprintf(" the %s panel", name)
}

// findEditorName names the editor, drawer or window holding path
func findEditorName(path Path, qs *queryState) string {
	if !path.Valid() {
		return ""
	}

	if statusBar := path.Closest(RoleStatusBar); statusBar != nil {
		qs.picked = statusBar
		return " the Status Bar"
	}

	if name, ok := findDockedEditorName(path, qs); ok {
		return name
	}

	if overlay := path.Outermost(RoleDrawerOverlay); overlay != nil {
		drawer, drawerName := findDescendant(overlay, RoleContentBrowser), "ContentBrowser"
		if drawer == nil {
			drawer, drawerName = findDescendant(overlay, RoleOutputLog), "OutputLog"
		}
		if drawer != nil {
			qs.picked = drawer
			return fmt.Sprintf("the %s drawer", drawerName)
		}
	}

	window := path.Window()
	if qs.host.IsMainWindow(window) {
		return " the editor's main window"
	}
	if title := window.Title(); title != "" {
		qs.picked = window
		return fmt.Sprintf(" the %s window", title)
	}
	return ""
}

func findDockedEditorName(path Path, qs *queryState) (string, bool) {
	area := path.Outermost(RoleDockingArea)
	if area == nil {
		return "", false
	}
	stack := findDescendant(area, RoleDockingTabStack)
	if stack == nil {
		return "", false
	}

	if levelEditor := findDescendant(stack, RoleLevelEditor); levelEditor != nil {
		qs.picked = levelEditor
		for _, mode := range qs.host.EditorModes() {
			if mode.Active && !blockedModeIDs[mode.ID] {
				return fmt.Sprintf(" the Level Editor with %s mode active", mode.Name), true
			}
		}
		return " the Level Editor", true
	}

	for _, tab := range findDescendants(stack, RoleDockTab) {
		if !tab.IsForeground() || tab.TabManager() == "" {
			continue
		}
		if editorName, ok := qs.host.AssetEditorName(tab.TabManager()); ok {
			qs.picked = stack
			return fmt.Sprintf(" the %s editor", editorName), true
		}
	}
	return "", false
}

// findTextUnderCursor returns the lettered text of a text block leaf
func findTextUnderCursor(path Path, qs *queryState) string {
	leaf := path.Last()
	if leaf == nil {
		return ""
	}
	if role := leaf.Role(); role != RoleTextBlock && role != RoleRichTextBlock {
		return ""
	}
	text := leaf.Text()
	if text == "" || !hasLetters(text) {
		return ""
	}
	qs.picked = leaf
	return text
}

// modeToolContext describes the active tool when the cursor is in the level editor
func modeToolContext(path Path, qs *queryState) string {
	if path.Closest(RoleLevelEditor) == nil {
		return ""
	}
	for _, mode := range qs.host.EditorModes() {
		if mode.Active && mode.ActiveTool != "" {
			return fmt.Sprintf("The %s tool is active for %s mode.", mode.ActiveTool, mode.Name)
		}
	}
	return ""
}

// detailsViewContext names the class a surrounding details view is editing
func detailsViewContext(path Path) string {
	view := path.Closest(RoleDetailsView)
	if view == nil {
		return ""
	}

	className := firstOf(view.SelectedActorClasses())
	if className == "" {
		className = firstOf(view.SelectedObjectClasses())
	}
	if className == "" {
		return ""
	}
	return fmt.Sprintf("The property panel I'm working in is editing at least one actor of the class \"%s\".", className)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
