package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/services"
)

// Quote walks through the quote builder: client details, optional
// segments with their prices, free-form add-ons, then totals and submit.
// Cancelling at the confirmation keeps the draft for the next run.
func (a *App) Quote(ctx context.Context) error {
	form := a.quote.Form()
	var err error
	if form.ClientName, err = GetDefault(a.reader, "Client name", form.ClientName, a.out); err != nil {
		return err
	}
	if form.PlanName, err = GetDefault(a.reader, "Plan name", form.PlanName, a.out); err != nil {
		return err
	}
	if form.SumInsured, err = GetNumber(a.reader, "Sum insured", form.SumInsured, a.out); err != nil {
		return err
	}
	if form.CoverType, err = GetDefault(a.reader, "Cover type", form.CoverType, a.out); err != nil {
		return err
	}
	if form.Notes, err = GetDefault(a.reader, "Notes", form.Notes, a.out); err != nil {
		return err
	}
	a.quote.SetForm(form)

	if err := a.pickSegments(); err != nil {
		return err
	}
	if err := a.addAddons(); err != nil {
		return err
	}

	a.println()
	printTotals(a.out, a.quote.Totals())

	ok, err := GetConfirm(a.reader, "Generate video?", a.out)
	if err != nil || !ok {
		return err
	}

	url, err := a.quote.Submit(ctx)
	if err != nil {
		return err
	}
	if url != "" {
		a.printf("Download: %s\n", url)
	}
	return nil
}

func (a *App) pickSegments() error {
	a.printf("Base video: %s (%s) %s\n", services.BaseVideo.Name, services.BaseVideo.Duration, services.FormatCurrency(services.BaseVideo.DefaultPrice))
	for _, s := range services.Segments {
		mark := " "
		if a.quote.IsSelected(s.ID) {
			mark = "x"
		}
		a.printf("  [%s] %d. %s (%s) %s\n", mark, s.ID, s.Name, s.Duration, services.FormatCurrency(s.DefaultPrice))
	}

	answer, err := getSimpleText(a.reader, "Segments to toggle, comma separated (blank to keep)", a.out)
	if err != nil {
		return err
	}
	for _, f := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, err := strconv.Atoi(f)
		if err != nil {
			a.printf("Skipping %q.\n", f)
			continue
		}
		if _, err := a.quote.Toggle(id); err != nil {
			a.printf("No segment %d.\n", id)
		}
	}

	for _, id := range a.quote.SelectedIDs() {
		price, _ := a.quote.SegmentPrice(id)
		for {
			p, err := GetNumber(a.reader, "Price for segment "+strconv.Itoa(id), price, a.out)
			if err != nil {
				return err
			}
			if err := a.quote.SetSegmentPrice(id, p); err != nil {
				a.println(err.Error())
				continue
			}
			break
		}
	}
	return nil
}

func (a *App) addAddons() error {
	for {
		name, err := getSimpleText(a.reader, "Add-on name (blank to finish)", a.out)
		if err != nil || name == "" {
			return err
		}
		price, err := GetNumber(a.reader, "Add-on price", 0, a.out)
		if err != nil {
			return err
		}
		a.quote.AddAddon(name, price)
	}
}
