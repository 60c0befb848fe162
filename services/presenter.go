package services

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"xlister/config"
	"xlister/models"
	"xlister/storage"
)

// Report holds the aggregates shown under the listing table.
type Report struct {
	Count       int
	TotalValue  float64
	ByCategory  map[string]int
	ByCondition map[string]int
}

// Presenter renders a collection as human-readable text.
type Presenter struct {
	out        io.Writer
	currency   string
	previewLen int
}

func NewPresenter(out io.Writer, cfg *config.Config) *Presenter {
	return &Presenter{
		out:        out,
		currency:   cfg.CurrencySymbol,
		previewLen: cfg.DescriptionPreview,
	}
}

// Summary reads the aggregates off the collection. Empty categories are not counted.
func (p *Presenter) Summary(c *storage.Collection) *Report {
	r := &Report{
		Count:       c.Count(),
		TotalValue:  c.TotalValue(),
		ByCategory:  make(map[string]int),
		ByCondition: make(map[string]int),
	}
	for _, l := range c.All() {
		if l.Category != "" {
			r.ByCategory[l.Category]++
		}
		r.ByCondition[l.Condition]++
	}
	return r
}

// Render prints a numbered list followed by the total inventory value.
func (p *Presenter) Render(c *storage.Collection) {
	if c.Count() == 0 {
		fmt.Fprintln(p.out, "No listings found.")
		return
	}

	r := p.Summary(c)
	sep := strings.Repeat("=", 60)

	fmt.Fprintf(p.out, "\n%s\n", sep)
	fmt.Fprintf(p.out, "Total Listings: %d\n", r.Count)
	fmt.Fprintf(p.out, "%s\n\n", sep)

	for i, l := range c.All() {
		p.renderListing(i+1, l)
	}

	fmt.Fprintf(p.out, "Total Inventory Value: %s\n", p.money(r.TotalValue))

	if len(r.ByCondition) > 1 {
		fmt.Fprintf(p.out, "By condition: %s\n", formatCounts(r.ByCondition))
	}
	if len(r.ByCategory) > 0 {
		fmt.Fprintf(p.out, "By category:  %s\n", formatCounts(r.ByCategory))
	}
	fmt.Fprintln(p.out)
}

func (p *Presenter) renderListing(n int, l *models.Listing) {
	fmt.Fprintf(p.out, "%d. %s - %s (%s)\n", n, l.Title, p.money(l.Price), l.Condition)
	if l.Description != "" {
		fmt.Fprintf(p.out, "   Description: %s\n", preview(l.Description, p.previewLen))
	}
	fmt.Fprintf(p.out, "   Category: %s | Quantity: %d\n\n", l.Category, l.Quantity)
}

func (p *Presenter) money(v float64) string {
	return fmt.Sprintf("%s%.2f", p.currency, v)
}

// formatCounts sorts by count descending, then name.
func formatCounts(counts map[string]int) string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, n := range counts {
		entries = append(entries, entry{name, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d)", e.name, e.count)
	}
	return strings.Join(parts, ", ")
}

// preview is the first max characters of s on one line, always followed by "...".
func preview(s string, max int) string {
	s = normaliseText(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s + "..."
}
