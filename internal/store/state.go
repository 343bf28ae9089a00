// Package store holds the dashboard's in-memory state and the pure
// transitions that move it from one snapshot to the next.
package store

import "github.com/xavierca1/leadpilot/internal/entity"

// State is an immutable snapshot. Transitions build new slices instead of
// writing through existing ones, so a snapshot can be read while the store
// moves on.
type State struct {
	View              entity.View               `json:"view"`
	Product           entity.AffiliateProduct   `json:"product"`
	Leads             []entity.Lead             `json:"leads"`
	Contents          []entity.GeneratedContent `json:"contents"`
	Templates         []entity.ContentTemplate  `json:"templates"`
	SelectedContentID string                    `json:"selected_content_id,omitempty"`
	Pending           int                       `json:"pending"`
}

// Initial is what a fresh process starts with.
func Initial() State {
	return State{
		View:      entity.ViewSettings,
		Leads:     []entity.Lead{},
		Contents:  []entity.GeneratedContent{},
		Templates: []entity.ContentTemplate{},
	}
}

func (s State) Loading() bool {
	return s.Pending > 0
}

func (s State) FindLead(id string) (entity.Lead, bool) {
	for _, l := range s.Leads {
		if l.ID == id {
			return l, true
		}
	}
	return entity.Lead{}, false
}

func (s State) FindContent(id string) (entity.GeneratedContent, bool) {
	for _, c := range s.Contents {
		if c.ID == id {
			return c, true
		}
	}
	return entity.GeneratedContent{}, false
}

func (s State) FindTemplate(id string) (entity.ContentTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return entity.ContentTemplate{}, false
}

// ActiveContent is the selected content item, if the selection still
// points at something.
func (s State) ActiveContent() (entity.GeneratedContent, bool) {
	if s.SelectedContentID == "" {
		return entity.GeneratedContent{}, false
	}
	return s.FindContent(s.SelectedContentID)
}

func (s State) LeadsWithStatus(status entity.LeadStatus) []entity.Lead {
	out := make([]entity.Lead, 0, len(s.Leads))
	for _, l := range s.Leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}
