package usecase

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/store"
)

const (
	DefaultLeadBatchSize   = 6
	DefaultDailyLeadTarget = 70
	recentLeadsShown       = 4
)

type DashboardSettings struct {
	LeadBatchSize   int
	DailyLeadTarget int
}

// Dashboard turns user intents into store transitions, calling the
// generation services where an intent needs the gateway.
type Dashboard struct {
	Store     *store.Store
	Leads     LeadSourcer
	Writer    ContentWriter
	Images    ImageMaker
	Publisher EventPublisher
	Mailer    ContentMailer
	Settings  DashboardSettings
	Logger    *zap.Logger

	flights singleflight.Group
}

func NewDashboard(
	st *store.Store,
	leads LeadSourcer,
	writer ContentWriter,
	images ImageMaker,
	publisher EventPublisher,
	mailer ContentMailer,
	settings DashboardSettings,
	logger *zap.Logger,
) *Dashboard {
	if settings.LeadBatchSize <= 0 {
		settings.LeadBatchSize = DefaultLeadBatchSize
	}
	if settings.DailyLeadTarget <= 0 {
		settings.DailyLeadTarget = DefaultDailyLeadTarget
	}

	d := &Dashboard{
		Store:     st,
		Leads:     leads,
		Writer:    writer,
		Images:    images,
		Publisher: publisher,
		Mailer:    mailer,
		Settings:  settings,
		Logger:    logger,
	}
	st.Subscribe(d.announce)
	return d
}

func (d *Dashboard) announce(a store.Action, _ store.State) {
	if d.Publisher == nil {
		return
	}
	evt, err := NewEvent(a.Name(), a)
	if err != nil {
		d.Logger.Error("encode event", zap.String("type", a.Name()), zap.Error(err))
		return
	}
	if err := d.Publisher.Publish(context.Background(), evt); err != nil {
		d.Logger.Warn("publish event", zap.String("type", evt.Type), zap.Error(err))
	}
}

// track marks the store as loading while fn runs.
func (d *Dashboard) track(fn func()) {
	d.Store.Dispatch(store.BeginOperation{})
	defer d.Store.Dispatch(store.EndOperation{})
	fn()
}

func (d *Dashboard) State() store.State {
	return d.Store.State()
}

func (d *Dashboard) Navigate(view string) (store.State, error) {
	v, err := entity.ParseView(view)
	if err != nil {
		return store.State{}, &DomainError{Code: CodeInvalidInput, Message: err.Error()}
	}
	return d.Store.Dispatch(store.Navigate{View: v}), nil
}

func (d *Dashboard) Product() entity.AffiliateProduct {
	return d.Store.State().Product
}

func (d *Dashboard) ConfigureProduct(p entity.AffiliateProduct) (entity.AffiliateProduct, error) {
	if errs := ValidateProduct(p); len(errs) > 0 {
		return entity.AffiliateProduct{}, errs
	}
	return d.Store.Dispatch(store.ConfigureProduct{Product: p}).Product, nil
}

// StartScan replaces the lead list with a fresh batch for the configured
// product. Concurrent calls share one gateway round trip.
func (d *Dashboard) StartScan(ctx context.Context) ([]entity.Lead, error) {
	v, err, shared := d.flights.Do("scan", func() (any, error) {
		return d.scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		d.Logger.Debug("scan joined in-flight request")
	}
	return v.([]entity.Lead), nil
}

func (d *Dashboard) scan(ctx context.Context) ([]entity.Lead, error) {
	product := d.Store.State().Product
	if err := product.ReadyToScan(); err != nil {
		return nil, &DomainError{Code: CodeProductIncomplete, Message: err.Error()}
	}

	var leads []entity.Lead
	d.track(func() {
		leads = d.Leads.FindPotentialLeads(context.WithoutCancel(ctx), LeadQuery{
			Niche:            product.Niche,
			Keywords:         product.Keywords,
			NegativeKeywords: product.NegativeKeywords,
			Count:            d.Settings.LeadBatchSize,
		})
	})

	next := d.Store.Dispatch(store.LeadsSourced{Leads: leads})
	return next.Leads, nil
}

// ListLeads returns leads with the given status, or all of them when status is empty.
func (d *Dashboard) ListLeads(status entity.LeadStatus) []entity.Lead {
	st := d.Store.State()
	if status == "" {
		return st.Leads
	}
	return st.LeadsWithStatus(status)
}

// QualifyLead marks the lead qualified and generates copy for it. Content is
// added whenever the draft has both a headline and a body, which includes the
// fallback draft; Output.Content is nil otherwise. Duplicate calls for the
// same lead made while one is running share its result.
func (d *Dashboard) QualifyLead(ctx context.Context, id string) (QualifyLeadOutput, error) {
	v, err, _ := d.flights.Do("qualify:"+id, func() (any, error) {
		return d.qualify(ctx, id)
	})
	if err != nil {
		return QualifyLeadOutput{}, err
	}
	return v.(QualifyLeadOutput), nil
}

func (d *Dashboard) qualify(ctx context.Context, id string) (QualifyLeadOutput, error) {
	st := d.Store.State()
	lead, ok := st.FindLead(id)
	if !ok {
		return QualifyLeadOutput{}, errLeadNotFound(id)
	}

	d.Store.Dispatch(store.QualifyLead{ID: id})
	lead.Status = entity.LeadStatusQualified

	var draft ContentDraft
	d.track(func() {
		draft = d.Writer.GeneratePersuasivePost(context.WithoutCancel(ctx), st.Product, lead)
	})

	out := QualifyLeadOutput{Lead: lead}
	if draft.Headline == "" || draft.Body == "" {
		d.Logger.Warn("generated content incomplete, nothing added", zap.String("lead_id", id))
		return out, nil
	}
	if draft.Degraded {
		d.Logger.Warn("content generation degraded to fallback copy", zap.String("lead_id", id))
	}

	content := entity.NewGeneratedContent(draft.Headline, draft.Body, st.Product.Link, lead.ID, entity.ContentTypePost)
	content.Degraded = draft.Degraded
	d.Store.Dispatch(store.ContentCreated{Content: content})

	out.Content = &content
	return out, nil
}

func (d *Dashboard) DiscardLead(id string) error {
	if _, ok := d.Store.State().FindLead(id); !ok {
		return errLeadNotFound(id)
	}
	d.Store.Dispatch(store.DiscardLead{ID: id})
	return nil
}

func (d *Dashboard) ListContents() []entity.GeneratedContent {
	return d.Store.State().Contents
}

func (d *Dashboard) Content(id string) (entity.GeneratedContent, error) {
	c, ok := d.Store.State().FindContent(id)
	if !ok {
		return entity.GeneratedContent{}, errContentNotFound(id)
	}
	return c, nil
}

func (d *Dashboard) UpdateContent(id string, patch entity.ContentPatch) (entity.GeneratedContent, error) {
	if _, err := d.Content(id); err != nil {
		return entity.GeneratedContent{}, err
	}
	next := d.Store.Dispatch(store.UpdateContent{ID: id, Patch: patch})
	c, _ := next.FindContent(id)
	return c, nil
}

func (d *Dashboard) SelectContent(id string) (entity.GeneratedContent, error) {
	c, err := d.Content(id)
	if err != nil {
		return entity.GeneratedContent{}, err
	}
	d.Store.Dispatch(store.SelectContent{ID: id})
	return c, nil
}

// GenerateImage illustrates the content's headline and attaches the result.
// Generated is false when no image came back; nothing is retried.
func (d *Dashboard) GenerateImage(ctx context.Context, id string) (GenerateImageOutput, error) {
	c, err := d.Content(id)
	if err != nil {
		return GenerateImageOutput{}, err
	}

	uri, ok := d.Images.GeneratePostImage(context.WithoutCancel(ctx), c.Headline)
	if !ok {
		return GenerateImageOutput{Content: c}, nil
	}

	updated, err := d.UpdateContent(id, entity.ContentPatch{ImageURL: &uri})
	if err != nil {
		return GenerateImageOutput{}, err
	}
	return GenerateImageOutput{Content: updated, Generated: true}, nil
}

// InsertLink puts the content's affiliate link into its body at the given
// rune offset; a negative offset appends.
func (d *Dashboard) InsertLink(id string, position int) (entity.GeneratedContent, error) {
	c, err := d.Content(id)
	if err != nil {
		return entity.GeneratedContent{}, err
	}
	body := entity.InsertIntoBody(c.Body, c.AffiliateLink, position)
	return d.UpdateContent(id, entity.ContentPatch{Body: &body})
}

func (d *Dashboard) ExportContent(id string) (string, error) {
	c, err := d.Content(id)
	if err != nil {
		return "", err
	}
	return c.Text(), nil
}

func (d *Dashboard) SendContent(id, to string) error {
	if d.Mailer == nil {
		return &DomainError{Code: CodeMailNotConfigured, Message: "mail delivery is not configured"}
	}
	if errs := ValidateRecipient(to); len(errs) > 0 {
		return errs
	}
	c, err := d.Content(id)
	if err != nil {
		return err
	}
	if err := d.Mailer.SendContent(to, c); err != nil {
		return &TechnicalError{Code: "mail_failed", Message: "send content", Err: err}
	}
	d.Logger.Info("content sent", zap.String("content_id", id))
	return nil
}

// SaveTemplate snapshots the content's text, with any unsaved edits from
// in applied, as a new template. The content itself is left as is.
func (d *Dashboard) SaveTemplate(in SaveTemplateInput) (entity.ContentTemplate, error) {
	c, err := d.Content(in.ContentID)
	if err != nil {
		return entity.ContentTemplate{}, err
	}
	snapshot := c.Apply(entity.ContentPatch{Headline: in.Headline, Body: in.Body})

	tpl := entity.NewTemplateFromContent(snapshot)
	d.Store.Dispatch(store.TemplateSaved{Template: tpl})
	return tpl, nil
}

// UseTemplate starts new content from the template. The affiliate link comes
// from the product as configured now, not from when the template was saved.
func (d *Dashboard) UseTemplate(id string) (entity.GeneratedContent, error) {
	st := d.Store.State()
	tpl, ok := st.FindTemplate(id)
	if !ok {
		return entity.GeneratedContent{}, errTemplateNotFound(id)
	}

	content := entity.NewGeneratedContent(tpl.Headline, tpl.Body, st.Product.Link, "", entity.ContentTypePost)
	d.Store.Dispatch(store.ContentCreated{Content: content})
	return content, nil
}

func (d *Dashboard) DeleteTemplate(id string) error {
	if _, ok := d.Store.State().FindTemplate(id); !ok {
		return errTemplateNotFound(id)
	}
	d.Store.Dispatch(store.DeleteTemplate{ID: id})
	return nil
}

func (d *Dashboard) SearchTemplates(term string) []entity.ContentTemplate {
	all := d.Store.State().Templates
	out := make([]entity.ContentTemplate, 0, len(all))
	for _, t := range all {
		if t.Matches(term) {
			out = append(out, t)
		}
	}
	return out
}

func (d *Dashboard) Summary() Summary {
	st := d.Store.State()

	sum := Summary{
		DailyTarget:    d.Settings.DailyLeadTarget,
		NewLeads:       len(st.LeadsWithStatus(entity.LeadStatusNew)),
		QualifiedLeads: len(st.LeadsWithStatus(entity.LeadStatusQualified)),
		ContentPieces:  len(st.Contents),
		Templates:      len(st.Templates),
		RecentLeads:    st.Leads[:min(recentLeadsShown, len(st.Leads))],
	}

	if total := len(st.Leads); total > 0 {
		var high, medium, low int
		for _, l := range st.Leads {
			switch l.IntentBand() {
			case entity.IntentHigh:
				high++
			case entity.IntentMedium:
				medium++
			default:
				low++
			}
		}
		sum.IntentDistribution = IntentDistribution{
			High:   percent(high, total),
			Medium: percent(medium, total),
			Low:    percent(low, total),
		}
	}
	return sum
}

func percent(n, total int) int {
	return int(math.Round(float64(n) * 100 / float64(total)))
}
