package inspector

import (
	utils "github.com/inference-gateway/editor-assistant/internal/utils"
)

// Role is the closed set of widget kinds the classifiers understand.
// Host toolkits map their own widget types onto it with RoleOf.
type Role int

const (
	RoleUnknown Role = iota
	RoleWindow
	RoleTextBlock
	RoleRichTextBlock
	RoleButton
	RoleGraphEditor
	RoleGraphPanel
	RoleGraphOverviewNode
	RoleToolBarButton
	RoleSearchBox
	RoleFilterSearchBox
	RoleEditableText
	RoleConsoleInput
	RoleMultiLineEditableText
	RoleMenuEntry
	RoleDetailRow
	RolePropertyName
	RoleBreadcrumbTrail
	RoleAssetTile
	RoleAssetThumbnail
	RoleOutliner
	RoleDockingArea
	RoleDockingTabStack
	RoleDockTab
	RoleLevelEditor
	RoleStatusBar
	RoleDrawerOverlay
	RoleContentBrowser
	RoleOutputLog
	RoleDetailsView
)

// hostTypes maps each role to its canonical host widget type
var hostTypes = utils.NewEnumTable(
	utils.EnumEntry[Role]{Value: RoleWindow, Description: "SWindow"},
	utils.EnumEntry[Role]{Value: RoleTextBlock, Description: "STextBlock"},
	utils.EnumEntry[Role]{Value: RoleRichTextBlock, Description: "SRichTextBlock"},
	utils.EnumEntry[Role]{Value: RoleButton, Description: "SButton"},
	utils.EnumEntry[Role]{Value: RoleGraphEditor, Description: "SGraphEditor"},
	utils.EnumEntry[Role]{Value: RoleGraphPanel, Description: "SGraphPanel"},
	utils.EnumEntry[Role]{Value: RoleGraphOverviewNode, Description: "SNiagaraOverviewStackNode"},
	utils.EnumEntry[Role]{Value: RoleToolBarButton, Description: "SToolBarButtonBlock"},
	utils.EnumEntry[Role]{Value: RoleSearchBox, Description: "SSearchBox"},
	utils.EnumEntry[Role]{Value: RoleFilterSearchBox, Description: "SFilterSearchBox"},
	utils.EnumEntry[Role]{Value: RoleEditableText, Description: "SEditableText"},
	utils.EnumEntry[Role]{Value: RoleConsoleInput, Description: "SConsoleInputBox"},
	utils.EnumEntry[Role]{Value: RoleMultiLineEditableText, Description: "SMultiLineEditableTextBox"},
	utils.EnumEntry[Role]{Value: RoleMenuEntry, Description: "SMenuEntryBlock"},
	utils.EnumEntry[Role]{Value: RoleDetailRow, Description: "SDetailSingleItemRow"},
	utils.EnumEntry[Role]{Value: RolePropertyName, Description: "SPropertyNameWidget"},
	utils.EnumEntry[Role]{Value: RoleBreadcrumbTrail, Description: "SBreadcrumbTrail<FNavigationCrumb>"},
	utils.EnumEntry[Role]{Value: RoleAssetTile, Description: "SAssetTileItem"},
	utils.EnumEntry[Role]{Value: RoleAssetThumbnail, Description: "SAssetThumbnail"},
	utils.EnumEntry[Role]{Value: RoleOutliner, Description: "SSceneOutliner"},
	utils.EnumEntry[Role]{Value: RoleDockingArea, Description: "SDockingArea"},
	utils.EnumEntry[Role]{Value: RoleDockingTabStack, Description: "SDockingTabStack"},
	utils.EnumEntry[Role]{Value: RoleDockTab, Description: "SDockTab"},
	utils.EnumEntry[Role]{Value: RoleLevelEditor, Description: "SLevelEditor"},
	utils.EnumEntry[Role]{Value: RoleStatusBar, Description: "SStatusBar"},
	utils.EnumEntry[Role]{Value: RoleDrawerOverlay, Description: "SDrawerOverlay"},
	utils.EnumEntry[Role]{Value: RoleContentBrowser, Description: "SContentBrowser"},
	utils.EnumEntry[Role]{Value: RoleOutputLog, Description: "SOutputLog"},
	utils.EnumEntry[Role]{Value: RoleDetailsView, Description: "SDetailsView"},
)

// hostTypeAliases are additional host types sharing a role
var hostTypeAliases = map[string]Role{
	"SPrimaryButton":           RoleButton,
	"SCheckbox":                RoleButton,
	"SToolBarComboButtonBlock": RoleToolBarButton,
	"SWidgetBlock":             RoleMenuEntry,
	"SSubobjectInstanceEditor": RoleOutliner,
}

// RoleOf maps a host widget type name to its role
func RoleOf(typeName string) Role {
	if role, ok := hostTypes.Value(typeName); ok {
		return role
	}
	if role, ok := hostTypeAliases[typeName]; ok {
		return role
	}
	return RoleUnknown
}

// String returns the canonical host type of the role
func (r Role) String() string {
	if name, ok := hostTypes.Description(r); ok {
		return name
	}
	return "Unknown"
}

// TabRole distinguishes document-level tabs from panel tabs
type TabRole int

const (
	TabRolePanel TabRole = iota
	TabRoleMajor
	TabRoleDocument
	TabRoleNomad
)

var tabRoles = utils.NewEnumTable(
	utils.EnumEntry[TabRole]{Value: TabRolePanel, Description: "panel"},
	utils.EnumEntry[TabRole]{Value: TabRoleMajor, Description: "major"},
	utils.EnumEntry[TabRole]{Value: TabRoleDocument, Description: "document"},
	utils.EnumEntry[TabRole]{Value: TabRoleNomad, Description: "nomad"},
)

// ParseTabRole maps a tab role name. Empty names are panel tabs.
func ParseTabRole(name string) (TabRole, bool) {
	if name == "" {
		return TabRolePanel, true
	}
	return tabRoles.Value(name)
}

// String returns the tab role's name
func (r TabRole) String() string {
	if name, ok := tabRoles.Description(r); ok {
		return name
	}
	return "unknown"
}

// isDocumentLevel reports whether a tab hosts a whole editor rather than a panel
func (r TabRole) isDocumentLevel() bool {
	return r == TabRoleMajor || r == TabRoleDocument
}
