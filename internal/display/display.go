// Package display renders dishes, builders and sessions for the terminal.
//
// Rendering is pure: [Card] and friends return strings, and [Printer]
// writes them with the shared palette. Nothing here reads input.
package display

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	effectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))
)

// ── Cards ────────────────────────────────────────────────────────

// Card renders a finished dish as a bordered summary.
func Card(d *dish.Dish) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Wok dish · %s", d.ModelType())))
	b.WriteByte('\n')
	writeContents(&b, d.Ingredients(), d.Seasonings())

	b.WriteString(sepStyle.Render(strings.Repeat("─", 28)))
	b.WriteByte('\n')
	b.WriteString(stat("food", fmt.Sprintf("%d", d.FoodLevel())))
	b.WriteString(stat("saturation", fmt.Sprintf("%.2f", d.SaturationModifier())))
	b.WriteString(stat("serves", fmt.Sprintf("%d/%d", d.Serves(), d.MaxServes())))
	b.WriteString(stat("eat time", fmt.Sprintf("×%.2f", d.UseDurationModifier())))
	if mix := categoryMix(d.CategoryTally()); mix != "" {
		b.WriteString(stat("mix", mix))
	}

	if names := effectNames(d.Effects()); len(names) > 0 {
		b.WriteString(labelStyle.Render("effects  "))
		b.WriteString(effectStyle.Render(strings.Join(names, ", ")))
		b.WriteByte('\n')
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// BuilderCard renders an in-progress builder against the actor's capacity.
func BuilderCard(b *dish.Builder, actor domain.Actor) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("In the wok · %d/%d", len(b.Ingredients()), b.Capacity(actor))))
	sb.WriteByte('\n')
	writeContents(&sb, b.Ingredients(), b.Seasonings())
	if v, ok := b.Water(); ok {
		sb.WriteString(stat("water", fmt.Sprintf("%d", v)))
	}
	if v, ok := b.Oil(); ok {
		sb.WriteString(stat("oil", fmt.Sprintf("%d", v)))
	}
	if b.Plain() {
		sb.WriteString(urgentStyle.Render("needs more seasoning"))
	}
	return cardStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// SessionLine renders a one-line session summary.
func SessionLine(s *domain.Session) string {
	status := secondaryStyle.Render(s.Status.String())
	if s.Open() {
		status = activeStyle.Render(s.Status.String())
	}
	line := fmt.Sprintf("%s  %s  %s", labelStyle.Render(s.ID), primaryStyle.Render(s.Vessel.String()), status)
	if s.DishID != "" {
		line += secondaryStyle.Render("  → " + s.DishID)
	}
	return line
}

// IngredientLine renders one ingredient with its material colour.
func IngredientLine(ing *domain.Ingredient) string {
	dot := lipgloss.NewStyle().Foreground(materialColor(ing.Material)).Render("●")
	text := fmt.Sprintf("%s (%s)", ing.Material.ID(), ing.Form)
	if traits := ing.Traits.List(); len(traits) > 0 {
		names := make([]string, len(traits))
		for i, t := range traits {
			names[i] = t.String()
		}
		text += " " + secondaryStyle.Render("["+strings.Join(names, ", ")+"]")
	}
	if ing.Doneness != nil {
		text += secondaryStyle.Render(fmt.Sprintf(" %.0f%%", *ing.Doneness*100))
	}
	return dot + " " + primaryStyle.Render(text)
}

func writeContents(b *strings.Builder, ings []*domain.Ingredient, sns []*domain.Seasoning) {
	for _, ing := range ings {
		b.WriteString(IngredientLine(ing))
		b.WriteByte('\n')
	}
	for _, sn := range sns {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("+ %s ×%d", sn.Spice.ID(), sn.Size)))
		b.WriteByte('\n')
	}
}

func stat(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-9s", label)) + primaryStyle.Render(value) + "\n"
}

// categoryMix lists tallied categories in declaration order.
func categoryMix(tally map[domain.Category]int) string {
	parts := make([]string, 0, len(tally))
	for _, c := range slices.Sorted(maps.Keys(tally)) {
		parts = append(parts, fmt.Sprintf("%s %d", c, tally[c]))
	}
	return strings.Join(parts, " · ")
}

func effectNames(effects []*domain.Effect) []string {
	var names []string
	for _, e := range effects {
		if e != nil {
			names = append(names, e.Name)
		}
	}
	return names
}

// materialColor converts a packed ARGB colour to a hex terminal colour.
func materialColor(m domain.Material) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", uint32(m.Color())&0xffffff))
}

// ── Printer ──────────────────────────────────────────────────────

// Printer writes styled lines to an output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Println prints a raw line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// PrintHeader prints a section header.
func (p *Printer) PrintHeader(text string) {
	p.Println(titleStyle.Render(text))
}

// PrintHint prints a secondary/dimmed line.
func (p *Printer) PrintHint(text string) {
	p.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error or alert line.
func (p *Printer) PrintUrgent(text string) {
	p.Println(urgentStyle.Render("  " + text))
}
