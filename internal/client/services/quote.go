package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/validation"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
)

// TaxRate is the GST percentage applied to every quote.
const TaxRate = 18.0

// Segment is a video that can be part of a quote.
type Segment struct {
	ID           int
	Name         string
	Duration     string
	DefaultPrice float64
}

// BaseVideo is always included at a fixed price.
var BaseVideo = Segment{ID: 0, Name: "Introduction & Plan Overview", Duration: "2:30", DefaultPrice: 4999}

// Segments are the optional videos, in display order.
var Segments = []Segment{
	{ID: 1, Name: "Coverage Highlights", Duration: "3:00", DefaultPrice: 2499},
	{ID: 2, Name: "Claim Process Walkthrough", Duration: "2:00", DefaultPrice: 1999},
	{ID: 3, Name: "Customer Testimonials", Duration: "1:30", DefaultPrice: 1499},
	{ID: 4, Name: "Tax Benefits Explainer", Duration: "0:45", DefaultPrice: 999},
	{ID: 5, Name: "Add-on Riders Overview", Duration: "2:15", DefaultPrice: 1799},
}

func segmentByID(id int) (Segment, bool) {
	for _, s := range Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

var currency = message.NewPrinter(language.English)

// FormatCurrency renders an amount as rupees with thousands grouping,
// e.g. ₹1,234.00.
func FormatCurrency(v float64) string {
	return currency.Sprintf("₹%.2f", v)
}

type QuoteForm struct {
	ClientName string  `json:"clientName" validate:"required"`
	PlanName   string  `json:"planName" validate:"required"`
	SumInsured float64 `json:"sumInsured" validate:"gt=0"`
	CoverType  string  `json:"coverType" validate:"required"`
	Notes      string  `json:"notes"`
}

type AddonLine struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// QuoteBuilder composes a quote from the base video, selected segments
// and free-form add-ons.
type QuoteBuilder struct {
	api   api.Client
	toast Notifier
	log   logging.Logger

	form     QuoteForm
	selected map[int]float64
	addons   []AddonLine
}

func NewQuoteBuilder(c api.Client, n Notifier, log logging.Logger) *QuoteBuilder {
	return &QuoteBuilder{api: c, toast: n, log: log, selected: map[int]float64{}}
}

func (q *QuoteBuilder) Form() QuoteForm { return q.form }

func (q *QuoteBuilder) SetForm(f QuoteForm) { q.form = f }

func (q *QuoteBuilder) IsSelected(id int) bool {
	_, ok := q.selected[id]
	return ok
}

// Toggle selects or deselects a segment. Selecting sets its default
// price; deselecting drops the price.
func (q *QuoteBuilder) Toggle(id int) (bool, error) {
	seg, ok := segmentByID(id)
	if !ok {
		return false, fmt.Errorf("segment %d: %w", id, common.ErrNotFound)
	}
	if _, on := q.selected[id]; on {
		delete(q.selected, id)
		return false, nil
	}
	q.selected[id] = seg.DefaultPrice
	return true, nil
}

// SetSegmentPrice is only allowed while the segment is selected.
func (q *QuoteBuilder) SetSegmentPrice(id int, price float64) error {
	if _, ok := segmentByID(id); !ok {
		return fmt.Errorf("segment %d: %w", id, common.ErrNotFound)
	}
	if _, on := q.selected[id]; !on {
		return fmt.Errorf("segment %d price: %w", id, ErrFieldDisabled)
	}
	if price < 0 {
		return validation.Field("price", "The field 'price' must be greater than or equal to 0.")
	}
	q.selected[id] = price
	return nil
}

func (q *QuoteBuilder) SegmentPrice(id int) (float64, bool) {
	p, ok := q.selected[id]
	return p, ok
}

// AddAddon appends an add-on and returns its index.
func (q *QuoteBuilder) AddAddon(name string, price float64) int {
	q.addons = append(q.addons, AddonLine{Name: name, Price: price})
	return len(q.addons) - 1
}

func (q *QuoteBuilder) SetAddon(i int, name string, price float64) error {
	if i < 0 || i >= len(q.addons) {
		return fmt.Errorf("addon %d: %w", i, common.ErrNotFound)
	}
	q.addons[i] = AddonLine{Name: name, Price: price}
	return nil
}

func (q *QuoteBuilder) RemoveAddon(i int) error {
	if i < 0 || i >= len(q.addons) {
		return fmt.Errorf("addon %d: %w", i, common.ErrNotFound)
	}
	q.addons = append(q.addons[:i], q.addons[i+1:]...)
	return nil
}

func (q *QuoteBuilder) Addons() []AddonLine {
	out := make([]AddonLine, len(q.addons))
	copy(out, q.addons)
	return out
}

// Totals is subtotal = base + selected segments + add-ons, plus GST.
func (q *QuoteBuilder) Totals() Totals {
	subtotal := BaseVideo.DefaultPrice
	for _, p := range q.selected {
		subtotal += p
	}
	for _, a := range q.addons {
		subtotal += a.Price
	}
	tax := subtotal * TaxRate / 100
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// SelectedIDs lists selected segments in display order.
func (q *QuoteBuilder) SelectedIDs() []int {
	ids := make([]int, 0, len(q.selected))
	for _, s := range Segments {
		if _, on := q.selected[s.ID]; on {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Payload builds the generation request. Selected segments are listed by
// id and repeated as named add-ons after the manual ones.
func (q *QuoteBuilder) Payload() models.GenerateVideoRequest {
	ids := q.SelectedIDs()

	addons := make([]models.Addon, 0, len(q.addons)+len(ids))
	for _, a := range q.addons {
		addons = append(addons, models.Addon{Name: strings.TrimSpace(a.Name), Price: FormatCurrency(a.Price)})
	}
	for _, id := range ids {
		seg, _ := segmentByID(id)
		addons = append(addons, models.Addon{Name: seg.Name, Price: FormatCurrency(q.selected[id])})
	}

	t := q.Totals()
	return models.GenerateVideoRequest{
		ClientName:     strings.TrimSpace(q.form.ClientName),
		PlanName:       strings.TrimSpace(q.form.PlanName),
		SumInsured:     q.form.SumInsured,
		CoverType:      strings.TrimSpace(q.form.CoverType),
		Notes:          strings.TrimSpace(q.form.Notes),
		BaseVideo:      models.BaseVideo{ID: BaseVideo.ID, Name: BaseVideo.Name, Price: BaseVideo.DefaultPrice},
		SelectedVideos: ids,
		Addons:         addons,
		TaxRate:        TaxRate,
		Subtotal:       t.Subtotal,
		Tax:            t.Tax,
		Total:          t.Total,
	}
}

func (q *QuoteBuilder) validate() error {
	if err := validation.Struct(q.form); err != nil {
		return err
	}
	for i, a := range q.addons {
		if err := validation.Struct(a); err != nil {
			return fmt.Errorf("addon %d: %w", i+1, err)
		}
	}
	for id, p := range q.selected {
		if p < 0 {
			return fmt.Errorf("segment %d: %w", id, validation.Field("price", "The field 'price' must be greater than or equal to 0."))
		}
	}
	return nil
}

// Submit sends the quote. On success the form is reset and the download
// URL, if the backend returned one, is passed back.
func (q *QuoteBuilder) Submit(ctx context.Context) (string, error) {
	if err := q.validate(); err != nil {
		q.toast.Error(err.Error(), titleValidation)
		return "", err
	}

	res, err := q.api.GenerateVideo(ctx, q.Payload())
	if err != nil {
		q.log.Warn(ctx, "generate video failed", "error", err)
		q.toast.Error(api.ErrorMessage(err, "Failed to generate video"), titleError)
		return "", fmt.Errorf("generate video: %w", err)
	}

	msg := res.Message
	if msg == "" {
		msg = "Video generation started! You will receive a download link shortly."
	}
	q.toast.Success(msg, titleSuccess)
	q.Reset()
	return res.DownloadURL, nil
}

func (q *QuoteBuilder) Reset() {
	q.form = QuoteForm{}
	q.selected = map[int]float64{}
	q.addons = nil
}
