package services

import (
	"context"
	"testing"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuote() (*QuoteBuilder, *fakeAPI, *fakeNotifier) {
	a, n := &fakeAPI{}, &fakeNotifier{}
	return NewQuoteBuilder(a, n, logging.Discard()), a, n
}

func validForm() QuoteForm {
	return QuoteForm{ClientName: "Acme", PlanName: "Family Floater", SumInsured: 500000, CoverType: "Health"}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹1,234.00", FormatCurrency(1234))
	assert.Equal(t, "₹4,999.00", FormatCurrency(4999))
	assert.Equal(t, "₹0.50", FormatCurrency(0.5))
}

func TestQuote_SubtotalInvariant(t *testing.T) {
	q, _, _ := newQuote()
	check := func() {
		t.Helper()
		want := BaseVideo.DefaultPrice
		for _, s := range Segments {
			if p, ok := q.SegmentPrice(s.ID); ok {
				want += p
			}
		}
		for _, a := range q.Addons() {
			want += a.Price
		}
		tot := q.Totals()
		assert.InDelta(t, want, tot.Subtotal, 1e-9)
		assert.InDelta(t, want*TaxRate/100, tot.Tax, 1e-9)
		assert.InDelta(t, tot.Subtotal+tot.Tax, tot.Total, 1e-9)
	}

	assert.Equal(t, BaseVideo.DefaultPrice, q.Totals().Subtotal)
	check()

	on, err := q.Toggle(1)
	require.NoError(t, err)
	assert.True(t, on)
	check()

	require.NoError(t, q.SetSegmentPrice(1, 1000))
	check()

	_, err = q.Toggle(3)
	require.NoError(t, err)
	q.AddAddon("Voice-over", 500)
	i := q.AddAddon("Subtitles", 250)
	check()

	require.NoError(t, q.SetAddon(i, "Subtitles (2 langs)", 400))
	check()
	require.NoError(t, q.RemoveAddon(0))
	check()

	on, err = q.Toggle(1)
	require.NoError(t, err)
	assert.False(t, on)
	check()

	_, ok := q.SegmentPrice(1)
	assert.False(t, ok)
}

func TestQuote_SegmentPriceOnlyWhileSelected(t *testing.T) {
	q, _, _ := newQuote()
	require.ErrorIs(t, q.SetSegmentPrice(2, 10), ErrFieldDisabled)
	require.ErrorIs(t, q.SetSegmentPrice(42, 10), common.ErrNotFound)

	_, err := q.Toggle(42)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, _ = q.Toggle(2)
	require.ErrorIs(t, q.SetSegmentPrice(2, -1), common.ErrValidation)

	// reselecting starts from the default price again
	require.NoError(t, q.SetSegmentPrice(2, 1))
	_, _ = q.Toggle(2)
	_, _ = q.Toggle(2)
	p, _ := q.SegmentPrice(2)
	assert.Equal(t, Segments[1].DefaultPrice, p)

	require.ErrorIs(t, q.RemoveAddon(0), common.ErrNotFound)
	require.ErrorIs(t, q.SetAddon(3, "x", 1), common.ErrNotFound)
}

func TestQuote_Payload(t *testing.T) {
	q, _, _ := newQuote()
	q.SetForm(validForm())
	_, _ = q.Toggle(4)
	_, _ = q.Toggle(2)
	require.NoError(t, q.SetSegmentPrice(2, 1234))
	q.AddAddon(" Voice-over ", 500)

	p := q.Payload()
	assert.Equal(t, []int{2, 4}, p.SelectedVideos)
	assert.Equal(t, []models.Addon{
		{Name: "Voice-over", Price: "₹500.00"},
		{Name: "Claim Process Walkthrough", Price: "₹1,234.00"},
		{Name: "Tax Benefits Explainer", Price: "₹999.00"},
	}, p.Addons)
	assert.Equal(t, "Acme", p.ClientName)
	assert.Equal(t, BaseVideo.DefaultPrice, p.BaseVideo.Price)
	assert.InDelta(t, 4999+1234+999+500, p.Subtotal, 1e-9)
	assert.InDelta(t, p.Subtotal*1.18, p.Total, 1e-6)
}

func TestQuote_SubmitSuccessResets(t *testing.T) {
	q, a, n := newQuote()
	var sent models.GenerateVideoRequest
	a.generateVideo = func(r models.GenerateVideoRequest) (*models.GenerateResult, error) {
		sent = r
		return &models.GenerateResult{DownloadURL: "https://dl/v.mp4"}, nil
	}
	q.SetForm(validForm())
	_, _ = q.Toggle(1)

	url, err := q.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://dl/v.mp4", url)
	assert.Equal(t, []int{1}, sent.SelectedVideos)
	assert.Equal(t, "success", n.last().Kind)

	assert.Equal(t, QuoteForm{}, q.Form())
	assert.Empty(t, q.SelectedIDs())
	assert.Empty(t, q.Addons())
}

func TestQuote_SubmitValidationAndFailure(t *testing.T) {
	q, a, n := newQuote()
	_, err := q.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, a.count("GenerateVideo"))

	q.SetForm(validForm())
	q.AddAddon("", 10)
	_, err = q.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	require.NoError(t, q.RemoveAddon(0))

	a.generateVideo = func(models.GenerateVideoRequest) (*models.GenerateResult, error) {
		return nil, &api.APIError{Message: `{"code":"QUOTA"}`}
	}
	_, err = q.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, note{"error", `{"code":"QUOTA"}`}, n.last())
	assert.Equal(t, validForm(), q.Form())
}
