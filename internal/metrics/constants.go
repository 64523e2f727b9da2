package metrics

// Metric names
const (
	MetricNameLevelsGained       = "forge_levels_gained_total"
	MetricNameSubStatsUnlocked   = "forge_substats_unlocked_total"
	MetricNameSubStatsReinforced = "forge_substats_reinforced_total"
	MetricNameEnhancements       = "forge_enhancements_total"
	MetricNameEnhancementXP      = "forge_enhancement_xp"
)

// Metric help text
const (
	HelpTextLevelsGained       = "Total number of item levels gained"
	HelpTextSubStatsUnlocked   = "Total number of sub stats unlocked"
	HelpTextSubStatsReinforced = "Total number of sub stat reinforcements"
	HelpTextEnhancements       = "Total number of enhancement requests by outcome"
	HelpTextEnhancementXP      = "XP spent per successful enhancement"
)

// Label names
const (
	LabelKind    = "kind"
	LabelStat    = "stat"
	LabelOutcome = "outcome"
)

// Enhancement outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)
