package store

import "github.com/xavierca1/leadpilot/internal/entity"

// Action is one intent applied to a snapshot. Only this package can
// implement it.
type Action interface {
	Name() string
	apply(State) State
}

// Reduce applies a to s and returns the next snapshot. s is left untouched.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

type Navigate struct {
	View entity.View `json:"view"`
}

func (Navigate) Name() string { return "view.changed" }

func (a Navigate) apply(s State) State {
	s.View = a.View
	return s
}

type ConfigureProduct struct {
	Product entity.AffiliateProduct `json:"product"`
}

func (ConfigureProduct) Name() string { return "product.configured" }

func (a ConfigureProduct) apply(s State) State {
	s.Product = a.Product
	return s
}

// LeadsSourced replaces the whole lead collection and shows the lead list.
type LeadsSourced struct {
	Leads []entity.Lead `json:"leads"`
}

func (LeadsSourced) Name() string { return "leads.sourced" }

func (a LeadsSourced) apply(s State) State {
	s.Leads = append([]entity.Lead{}, a.Leads...)
	s.View = entity.ViewLeads
	return s
}

type QualifyLead struct {
	ID string `json:"id"`
}

func (QualifyLead) Name() string { return "lead.qualified" }

func (a QualifyLead) apply(s State) State {
	leads := make([]entity.Lead, len(s.Leads))
	for i, l := range s.Leads {
		if l.ID == a.ID {
			l.Status = entity.LeadStatusQualified
		}
		leads[i] = l
	}
	s.Leads = leads
	return s
}

// DiscardLead drops the lead; discarded leads are not archived.
type DiscardLead struct {
	ID string `json:"id"`
}

func (DiscardLead) Name() string { return "lead.discarded" }

func (a DiscardLead) apply(s State) State {
	leads := make([]entity.Lead, 0, len(s.Leads))
	for _, l := range s.Leads {
		if l.ID != a.ID {
			leads = append(leads, l)
		}
	}
	s.Leads = leads
	return s
}

// ContentCreated prepends the content, selects it and opens the workshop.
type ContentCreated struct {
	Content entity.GeneratedContent `json:"content"`
}

func (ContentCreated) Name() string { return "content.created" }

func (a ContentCreated) apply(s State) State {
	s.Contents = append([]entity.GeneratedContent{a.Content}, s.Contents...)
	s.SelectedContentID = a.Content.ID
	s.View = entity.ViewContent
	return s
}

type UpdateContent struct {
	ID    string             `json:"id"`
	Patch entity.ContentPatch `json:"patch"`
}

func (UpdateContent) Name() string { return "content.updated" }

func (a UpdateContent) apply(s State) State {
	contents := make([]entity.GeneratedContent, len(s.Contents))
	for i, c := range s.Contents {
		if c.ID == a.ID {
			c = c.Apply(a.Patch)
		}
		contents[i] = c
	}
	s.Contents = contents
	return s
}

type SelectContent struct {
	ID string `json:"id"`
}

func (SelectContent) Name() string { return "content.selected" }

func (a SelectContent) apply(s State) State {
	s.SelectedContentID = a.ID
	return s
}

type TemplateSaved struct {
	Template entity.ContentTemplate `json:"template"`
}

func (TemplateSaved) Name() string { return "template.saved" }

func (a TemplateSaved) apply(s State) State {
	s.Templates = append([]entity.ContentTemplate{a.Template}, s.Templates...)
	return s
}

type DeleteTemplate struct {
	ID string `json:"id"`
}

func (DeleteTemplate) Name() string { return "template.deleted" }

func (a DeleteTemplate) apply(s State) State {
	templates := make([]entity.ContentTemplate, 0, len(s.Templates))
	for _, t := range s.Templates {
		if t.ID != a.ID {
			templates = append(templates, t)
		}
	}
	s.Templates = templates
	return s
}

type BeginOperation struct{}

func (BeginOperation) Name() string { return "operation.started" }

func (BeginOperation) apply(s State) State {
	s.Pending++
	return s
}

type EndOperation struct{}

func (EndOperation) Name() string { return "operation.finished" }

func (EndOperation) apply(s State) State {
	if s.Pending > 0 {
		s.Pending--
	}
	return s
}
