package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/rpg-progression/internal/bonusstat"
	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/render"
)

const barWidth = 40

func formatStat(s bonusstat.Stat) string {
	if v, ok := s.Flat(); ok {
		return fmt.Sprintf("%-24s %s", s.Type(), render.Thousands(v))
	}
	v, _ := s.Ratio()
	return fmt.Sprintf("%-24s %.4f", s.Type(), v)
}

func formatAmount(t bonusstat.Type, a bonusstat.Amount) string {
	entry, _ := bonusstat.Lookup(t)
	if entry.Payload.IsFlat() {
		return fmt.Sprintf("+%d", a.Flat)
	}
	return fmt.Sprintf("+%.4f", a.Ratio)
}

func printItem(w io.Writer, owner string, item *equipment.Item) error {
	header := fmt.Sprintf("%s %s (%s)", render.ShortID(item.ID()), item.Name(), item.Kind())
	if owner != "" {
		header += " owned by " + owner
	}
	fmt.Fprintln(w, header)

	bar, err := render.XPBar(item.Level(), item.XP(), item.Required(), barWidth)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  "+bar)

	fmt.Fprintf(w, "  main  %s\n", formatStat(item.MainStat()))
	for _, sub := range item.SubStats() {
		fmt.Fprintf(w, "  sub   %s\n", formatStat(sub))
	}
	return nil
}

func printResult(w io.Writer, item *equipment.Item, result *equipment.AdvanceResult) {
	fmt.Fprintf(w, "  +%s xp", render.Thousands(result.XPApplied))
	if result.LevelsGained() == 0 {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, ", level %d -> %d\n", result.FromLevel, result.ToLevel)

	for _, lu := range result.LevelUps {
		parts := []string{
			fmt.Sprintf("Lv %d", lu.Level),
			fmt.Sprintf("%s %s", item.MainStatType(), formatAmount(item.MainStatType(), lu.MainStatDelta)),
		}
		for _, r := range lu.Reinforced {
			parts = append(parts, fmt.Sprintf("reinforced %s %s", r.Type, formatAmount(r.Type, r.Delta)))
		}
		if lu.Unlocked != nil {
			parts = append(parts, "unlocked "+formatStat(*lu.Unlocked))
		}
		if lu.Exhausted {
			parts = append(parts, "sub stat pool exhausted")
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, " | "))
	}
}
