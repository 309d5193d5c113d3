package models

// Flash — одноразовое уведомление, которое показывается на следующей странице.
type Flash struct {
	Category string
	Message  string
}
