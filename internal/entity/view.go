package entity

import "fmt"

type View string

const (
	ViewDashboard View = "dashboard"
	ViewLeads     View = "leads"
	ViewContent   View = "content"
	ViewSettings  View = "settings"
	ViewTemplates View = "templates"
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewDashboard, ViewLeads, ViewContent, ViewSettings, ViewTemplates:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}
