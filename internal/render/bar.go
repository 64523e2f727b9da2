// Package render draws progression state for terminals.
package render

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Bar defaults
const (
	DefaultWidth        = 50
	DefaultBracketLeft  = "["
	DefaultBracketRight = "]"
	DefaultFill         = '#'
	DefaultBlank        = ' '
)

// BarConfig configures a Bar
type BarConfig struct {
	BracketLeft  string
	BracketRight string
	Fill         rune
	Blank        rune
	Width        int
}

// DefaultBarConfig returns the standard bar look
func DefaultBarConfig() BarConfig {
	return BarConfig{
		BracketLeft:  DefaultBracketLeft,
		BracketRight: DefaultBracketRight,
		Fill:         DefaultFill,
		Blank:        DefaultBlank,
		Width:        DefaultWidth,
	}
}

// Bar is a single line progress bar with optional labels above it and a
// progress marker below it
type Bar struct {
	cfg           BarConfig
	progress      int
	progressLabel string
	labelLeft     string
	labelRight    string
}

// NewBar creates an empty bar
func NewBar(cfg BarConfig) (*Bar, error) {
	if cfg.Width <= 0 {
		return nil, errors.InvalidArgumentf("bar width must be positive, got %d", cfg.Width)
	}
	return &Bar{cfg: cfg}, nil
}

// SetProgress fills progress cells and sets the label drawn under the marker.
// An empty label draws no marker.
func (b *Bar) SetProgress(progress int, label string) error {
	if progress < 0 || progress > b.cfg.Width {
		return errors.OutOfRangef("progress %d must be within 0..%d", progress, b.cfg.Width)
	}
	if len(label) > b.cfg.Width {
		return errors.InvalidArgumentf("progress label must not be wider than the bar (%d)", b.cfg.Width)
	}

	b.progress = progress
	b.progressLabel = label
	return nil
}

// SetLabels sets the labels printed above the bar's left and right edges
func (b *Bar) SetLabels(left, right string) error {
	if len(left)+len(right) >= b.totalWidth() {
		return errors.InvalidArgumentf("labels must be narrower than the bar (%d)", b.totalWidth())
	}

	b.labelLeft = left
	b.labelRight = right
	return nil
}

func (b *Bar) totalWidth() int {
	return len(b.cfg.BracketLeft) + b.cfg.Width + len(b.cfg.BracketRight)
}

// String renders the bar
func (b *Bar) String() string {
	var out strings.Builder

	if b.labelLeft != "" || b.labelRight != "" {
		out.WriteString(b.labelLeft)
		out.WriteString(strings.Repeat(" ", b.totalWidth()-len(b.labelLeft)-len(b.labelRight)))
		out.WriteString(b.labelRight)
		out.WriteString("\n")
	}

	out.WriteString(b.cfg.BracketLeft)
	out.WriteString(strings.Repeat(string(b.cfg.Fill), b.progress))
	out.WriteString(strings.Repeat(string(b.cfg.Blank), b.cfg.Width-b.progress))
	out.WriteString(b.cfg.BracketRight)
	out.WriteString("\n")

	if b.progressLabel != "" {
		left := len(b.cfg.BracketLeft)
		out.WriteString(strings.Repeat(" ", min(b.progress+left, b.cfg.Width)))
		out.WriteString("^\n")
		out.WriteString(strings.Repeat(" ", min(b.progress+left+1, b.cfg.Width+left-len(b.progressLabel))))
		out.WriteString(b.progressLabel)
		out.WriteString("\n")
	}

	return out.String()
}

// XPBar renders xp toward required on a default styled bar of width cells,
// labelled with the level and the remaining xp
func XPBar(level uint32, xp, required uint64, width int) (string, error) {
	if required == 0 || xp > required {
		return "", errors.InvalidArgumentf("xp %d must be within 0..%d", xp, required)
	}

	cfg := DefaultBarConfig()
	cfg.Width = width
	bar, err := NewBar(cfg)
	if err != nil {
		return "", err
	}

	filled := new(big.Int).Mul(new(big.Int).SetUint64(xp), big.NewInt(int64(width)))
	filled.Quo(filled, new(big.Int).SetUint64(required))

	label := fmt.Sprintf("%s/%s", Thousands(xp), Thousands(required))
	if len(label) > width {
		label = ""
	}
	if err := bar.SetProgress(int(filled.Int64()), label); err != nil {
		return "", err
	}

	left := fmt.Sprintf("Lv %d", level)
	right := fmt.Sprintf("%s to go", Thousands(required-xp))
	if len(left)+len(right) >= bar.totalWidth() {
		right = ""
	}
	if err := bar.SetLabels(left, right); err != nil {
		return "", err
	}

	return bar.String(), nil
}

// Thousands formats n with comma separators
func Thousands(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}

// ShortID abbreviates a long id to its head and tail, e.g. [1b4e28...a2b5c7]
func ShortID(id string) string {
	const head, tail = 6, 6
	if len(id) <= head+tail+3 {
		return "[" + id + "]"
	}
	return "[" + id[:head] + "..." + id[len(id)-tail:] + "]"
}
