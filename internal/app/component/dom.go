package component

// Element IDs used by the dashboard markup and its script. Tests select on
// these, so keep them in sync with the rendered document.
const (
	IDPersonList       = "person-list"
	IDAdminControls    = "admin-controls"
	IDAddPersonForm    = "add-person-form"
	IDNewName          = "new-name"
	IDUpdatePointsForm = "update-points-form"
	IDUpdateName       = "update-name"
	IDNewPoints        = "new-points"
)

// CSS class names.
const (
	ClassSiteHeader = "site-header"
)
