// Package metrics holds the prometheus collectors of the forge
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Metrics groups the forge collectors
type Metrics struct {
	LevelsGained       *prometheus.CounterVec
	SubStatsUnlocked   *prometheus.CounterVec
	SubStatsReinforced *prometheus.CounterVec
	Enhancements       *prometheus.CounterVec
	EnhancementXP      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LevelsGained: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameLevelsGained, Help: HelpTextLevelsGained},
			[]string{LabelKind},
		),
		SubStatsUnlocked: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameSubStatsUnlocked, Help: HelpTextSubStatsUnlocked},
			[]string{LabelKind, LabelStat},
		),
		SubStatsReinforced: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameSubStatsReinforced, Help: HelpTextSubStatsReinforced},
			[]string{LabelKind, LabelStat},
		),
		Enhancements: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameEnhancements, Help: HelpTextEnhancements},
			[]string{LabelKind, LabelOutcome},
		),
		EnhancementXP: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricNameEnhancementXP,
				Help:    HelpTextEnhancementXP,
				Buckets: prometheus.ExponentialBuckets(100, 4, 10),
			},
			[]string{LabelKind},
		),
	}
}

// ObserveAdvance records the level ups and sub stat events of one advance
func (m *Metrics) ObserveAdvance(kind equipment.Kind, result *equipment.AdvanceResult) {
	if result == nil {
		return
	}

	m.LevelsGained.WithLabelValues(kind.String()).Add(float64(result.LevelsGained()))
	m.EnhancementXP.WithLabelValues(kind.String()).Observe(float64(result.XPApplied))

	for _, lu := range result.LevelUps {
		if lu.Unlocked != nil {
			m.SubStatsUnlocked.WithLabelValues(kind.String(), lu.Unlocked.Type().String()).Inc()
		}
		for _, r := range lu.Reinforced {
			m.SubStatsReinforced.WithLabelValues(kind.String(), r.Type.String()).Inc()
		}
	}
}

// ObserveEnhancement counts an enhancement request by how it ended
func (m *Metrics) ObserveEnhancement(kind equipment.Kind, err error) {
	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.IsInvalidArgument(err), errors.IsNotFound(err), errors.IsOutOfRange(err):
		outcome = OutcomeRejected
	default:
		outcome = OutcomeFailed
	}
	m.Enhancements.WithLabelValues(kind.String(), outcome).Inc()
}
