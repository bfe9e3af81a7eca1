package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/generation"
	"github.com/alexanderramin/blockplan/internal/importer"
	"github.com/alexanderramin/blockplan/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the formatter's Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// instanceWizardInput holds the raw strings collected by instanceWizard.
type instanceWizardInput struct {
	Name      string
	Positions string
	Items     string
	Side      string
}

// instanceWizard asks for a timeline length, the items and optional
// position limits.
func instanceWizard(in *instanceWizardInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("optional").
				Value(&in.Name),
			huh.NewInput().
				Title("Timeline Length").
				Placeholder("10").
				Value(&in.Positions).
				Validate(validateRequiredPositiveInt),
			huh.NewInput().
				Title("Items").
				Description("ID:LENGTH pairs like A:1 B:2, or bare lengths like 1 2 3").
				Value(&in.Items).
				Validate(func(s string) error {
					_, err := parseItemSpec(s)
					return err
				}),
			huh.NewInput().
				Title("Position Limits").
				Description("Optional, like A>=3 B<=4").
				Value(&in.Side).
				Validate(func(s string) error {
					_, err := parseSideSpec(s)
					return err
				}),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// instance converts the collected answers through the same validation an
// instance file gets.
func (in instanceWizardInput) instance() (*domain.Instance, error) {
	n, err := strconv.Atoi(strings.TrimSpace(in.Positions))
	if err != nil {
		return nil, fmt.Errorf("timeline length %q is not a number", in.Positions)
	}
	items, err := parseItemSpec(in.Items)
	if err != nil {
		return nil, err
	}
	side, err := parseSideSpec(in.Side)
	if err != nil {
		return nil, err
	}
	return service.ConvertSchema(&importer.InstanceSchema{
		Name:            strings.TrimSpace(in.Name),
		TimelineLength:  n,
		Items:           items,
		SideConstraints: side,
	})
}

// parseItemSpec reads "A:1 B:2" pairs or bare lengths "1 2", which are
// labelled A, B, ... in order. Commas count as spaces.
func parseItemSpec(s string) ([]importer.ItemImport, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter at least one item")
	}
	items := make([]importer.ItemImport, 0, len(fields))
	for i, f := range fields {
		id, lengthStr, ok := strings.Cut(f, ":")
		if !ok {
			id, lengthStr = generation.ItemLabel(i), f
		}
		length, err := strconv.Atoi(lengthStr)
		if err != nil || length <= 0 || id == "" {
			return nil, fmt.Errorf("%q: want ID:LENGTH with a positive length", f)
		}
		items = append(items, importer.ItemImport{ID: id, Length: length})
	}
	return items, nil
}

// parseSideSpec reads limits such as "A>=3 B<=4". Empty input means none.
func parseSideSpec(s string) ([]importer.SideConstraintImport, error) {
	var out []importer.SideConstraintImport
	for _, f := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		kind, op := importer.KindAtOrAfter, ">="
		if strings.Contains(f, "<=") {
			kind, op = importer.KindAtOrBefore, "<="
		}
		id, ordStr, ok := strings.Cut(f, op)
		ord, err := strconv.Atoi(ordStr)
		if !ok || id == "" || err != nil {
			return nil, fmt.Errorf("%q: want ID>=N or ID<=N", f)
		}
		out = append(out, importer.SideConstraintImport{Kind: kind, Item: id, Ordinal: ord})
	}
	return out, nil
}

func validateRequiredPositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
