package core

// Categories is the fixed set of expense categories offered by the UI.
// Records store the category as a plain string; the list only drives the
// form select and the filter dropdown.
var Categories = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	"Education",
	"Other",
}
