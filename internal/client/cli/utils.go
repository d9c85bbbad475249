package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/services"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func activeLabel(u models.AccountUser) string {
	if u.IsActive {
		return "active"
	}
	return "inactive"
}

func printUsers(w io.Writer, d *services.Directory) {
	users := d.Users()
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tDOWNLOADS")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
			u.ID, u.Name, u.Email, u.Role, activeLabel(u), u.DownloadsUsed, u.DownloadLimit)
	}
	_ = tw.Flush()

	pages := make([]string, 0, d.Pages())
	for _, n := range d.PageNumbers() {
		if n == d.Page() {
			pages = append(pages, fmt.Sprintf("[%d]", n))
		} else {
			pages = append(pages, strconv.Itoa(n))
		}
	}
	footer := fmt.Sprintf("Page %s of %d, %d users", strings.Join(pages, " "), d.Pages(), d.Total())
	if d.SearchTerm() != "" {
		footer += fmt.Sprintf(" matching %q", d.SearchTerm())
	}
	fmt.Fprintln(w, footer)
}

func printVideos(w io.Writer, g *services.Gallery) {
	items := g.PageItems()
	if len(items) == 0 {
		fmt.Fprintln(w, "No videos yet. Generate one with 'quote'.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION\tCREATED\tSTATUS")
	for _, v := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.Title, v.Description, v.CreatedAt, v.Status)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Page %d of %d, %d videos\n", g.Page(), g.TotalPages(), g.Total())
}

func printTotals(w io.Writer, t services.Totals) {
	fmt.Fprintf(w, "Subtotal: %s\n", services.FormatCurrency(t.Subtotal))
	fmt.Fprintf(w, "GST (%g%%): %s\n", float64(services.TaxRate), services.FormatCurrency(t.Tax))
	fmt.Fprintf(w, "Total:    %s\n", services.FormatCurrency(t.Total))
}
