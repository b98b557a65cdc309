/*
Package profile builds the text panel shown alongside the animation.

The panel is described by a YAML document:

	title: GENERAL INFO
	footer: GITHUB STATS
	rows:
	  - label: NAME
	    value: Jane Doe
	theme:
	  heading: {bg: "#efc500", fg: "#fff", bold: true}
	  label: {bg: "#e74c3c", fg: "#fff", bold: true}
	  label_alt: {bg: "#c0392b", fg: "#fff", bold: true}
	  value: {bg: "#ecf0f1", fg: "#000"}
	  value_alt: {bg: "#bdc3c7", fg: "#000"}

Alternate rows use the _alt styles.
*/
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/blockcard/ansi"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const (
	labelWidth = 8
	gutter     = "  "
)

// Row is a single label and value pair
type Row struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Theme holds the styles used by the panel
type Theme struct {
	Heading  ansi.Style `yaml:"heading"`
	Label    ansi.Style `yaml:"label"`
	LabelAlt ansi.Style `yaml:"label_alt"`
	Value    ansi.Style `yaml:"value"`
	ValueAlt ansi.Style `yaml:"value_alt"`
}

// Panel is the profile panel configuration
type Panel struct {
	Title  string `yaml:"title"`
	Footer string `yaml:"footer"`
	Rows   []Row  `yaml:"rows"`
	Theme  Theme  `yaml:"theme"`
}

// Parse parses and validates a YAML panel description.
func Parse(b []byte) (*Panel, error) {
	var p Panel
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the panel for errors.
func (p *Panel) Validate() error {
	for i, r := range p.Rows {
		if r.Label == "" {
			return fmt.Errorf("profile: row[%d] label is required", i)
		}
		if runewidth.StringWidth(r.Label) > labelWidth {
			return fmt.Errorf("profile: row[%d] label %q is wider than %d cells", i, r.Label, labelWidth)
		}
	}
	for name, s := range map[string]ansi.Style{
		"heading":   p.Theme.Heading,
		"label":     p.Theme.Label,
		"label_alt": p.Theme.LabelAlt,
		"value":     p.Theme.Value,
		"value_alt": p.Theme.ValueAlt,
	} {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("profile: theme %s: %w", name, err)
		}
	}
	if p.Title == "" && p.Footer == "" && len(p.Rows) == 0 {
		return errors.New("profile: panel is empty")
	}
	return nil
}

// ToYAML serializes the panel to YAML.
func (p *Panel) ToYAML() ([]byte, error) {
	return yaml.Marshal(p)
}

func center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// Width returns the width in cells of the widest panel line, excluding the
// gutter.
func (p *Panel) Width() int {
	value := 0
	for _, r := range p.Rows {
		if w := runewidth.StringWidth(r.Value); w > value {
			value = w
		}
	}
	// Label column plus value padded with a space either side
	width := 0
	if len(p.Rows) > 0 {
		width = labelWidth + value + 2
	}
	for _, h := range []string{p.Title, p.Footer} {
		if h == "" {
			continue
		}
		// Heading text is framed by « and » and a space either side
		if w := runewidth.StringWidth(h) + 6; w > width {
			width = w
		}
	}
	return width
}

func (p *Panel) heading(mode ansi.ColorMode, text string, width int) string {
	return p.Theme.Heading.Render(mode, " «"+center(text, width-4)+"» ")
}

// Lines renders the panel, one string per line. Empty strings separate the
// sections.
func (p *Panel) Lines(mode ansi.ColorMode) []string {
	width := p.Width()
	value := width - labelWidth - 2

	var lines []string
	if p.Title != "" {
		lines = append(lines, p.heading(mode, p.Title, width), "")
	}
	for i, r := range p.Rows {
		label, val := p.Theme.Label, p.Theme.Value
		if i%2 == 1 {
			label, val = p.Theme.LabelAlt, p.Theme.ValueAlt
		}
		lines = append(lines,
			label.Render(mode, center(r.Label, labelWidth))+
				val.Render(mode, " "+runewidth.FillRight(r.Value, value)+" "))
	}
	if p.Footer != "" {
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, p.heading(mode, p.Footer, width))
	}
	return lines
}

// Attach appends the panel lines to the right of the rows of a rendered
// frame. Rows without a corresponding non-empty line are left alone.
func Attach(frame string, lines []string) string {
	rows := strings.Split(frame, "\n")
	for i := range rows {
		if i < len(lines) && lines[i] != "" {
			rows[i] += gutter + lines[i]
		}
	}
	return strings.Join(rows, "\n")
}
