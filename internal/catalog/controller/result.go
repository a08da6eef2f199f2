package controller

import "github.com/tair/catalog-mvc/internal/catalog/dto"

// Status tells the presentation layer what to do with a Result
type Status int

const (
	// StatusView renders Result.View with Result.Model
	StatusView Status = iota
	// StatusRedirect navigates to Result.Action
	StatusRedirect
	// StatusNotFound means the id was missing or matched no product
	StatusNotFound
)

// Actions a Result can redirect to
const (
	ActionIndex = "Index"
)

// Views rendered by the products controller
const (
	ViewIndex   = "Index"
	ViewCreate  = "Create"
	ViewEdit    = "Edit"
	ViewDelete  = "Delete"
	ViewDetails = "Details"
)

// Result is the outcome of one controller action
type Result struct {
	Status Status
	View   string
	Model  any
	Data   ViewData
	Action string
}

// ViewData carries request-scoped values alongside the model
type ViewData struct {
	Categories  []SelectItem
	ImageExists bool
}

// SelectItem is one option of a select list
type SelectItem struct {
	Value    uint
	Text     string
	Selected bool
}

// View builds a render result
func View(name string, model any, data ViewData) Result {
	return Result{Status: StatusView, View: name, Model: model, Data: data}
}

// RedirectToAction builds a navigation result
func RedirectToAction(action string) Result {
	return Result{Status: StatusRedirect, Action: action}
}

// NotFound builds a not found result
func NotFound() Result {
	return Result{Status: StatusNotFound}
}

// NewSelectList turns categories into select options, marking selectedID
func NewSelectList(categories []dto.CategoryDTO, selectedID uint) []SelectItem {
	items := make([]SelectItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, SelectItem{
			Value:    c.ID,
			Text:     c.Name,
			Selected: selectedID != 0 && c.ID == selectedID,
		})
	}
	return items
}
