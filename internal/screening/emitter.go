package screening

import (
	"context"
	"fmt"
	"strings"

	"github.com/openreception/porteiro/internal/logger"
	"github.com/openreception/porteiro/internal/metrics"
	"github.com/openreception/porteiro/internal/models"
)

// OccurrenceStore appends audit occurrences.
type OccurrenceStore interface {
	Append(ctx context.Context, occ *models.Occurrence) error
}

// AutoOccurrenceConfig exposes the hot-reloadable global switch for
// automatic occurrence generation.
type AutoOccurrenceConfig interface {
	AutoOccurrenceEnabled() bool
}

// Emitter writes one audit occurrence per predictive match flagged
// with auto_occurrence, when the global switch is on. Emission is
// best-effort: a storage failure is logged and counted but never
// blocks or rolls back the check-in decision.
type Emitter struct {
	store  OccurrenceStore
	config AutoOccurrenceConfig
}

func NewEmitter(store OccurrenceStore, config AutoOccurrenceConfig) *Emitter {
	return &Emitter{store: store, config: config}
}

// EmitPredictive emits occurrences for the resolution's predictive
// matches and returns how many were written. Visitor and destination
// links are attached only when known.
func (e *Emitter) EmitPredictive(ctx context.Context, res Resolution, visitorID, destinationID *uint, operatorID uint) int {
	if !e.config.AutoOccurrenceEnabled() {
		return 0
	}

	emitted := 0
	for _, m := range res.Matches {
		if m.SourceKind != SourcePredictive || !m.AutoOccurrence {
			continue
		}
		occ := &models.Occurrence{
			Description:     occurrenceDescription(m),
			Severity:        models.OccurrenceSeverityFrom(m.Severity),
			VisitorID:       visitorID,
			DestinationID:   destinationID,
			RestrictionKind: string(SourcePredictive),
			RestrictionID:   ref(m.RestrictionID),
			OperatorID:      operatorID,
			Automatic:       true,
		}
		if err := e.store.Append(ctx, occ); err != nil {
			metrics.IncOccurrenceFailed()
			logger.WithFields(map[string]interface{}{
				"restriction_id": m.RestrictionID,
				"operator_id":    operatorID,
			}).WithError(err).Warn("failed to write automatic occurrence")
			continue
		}
		metrics.IncOccurrenceEmitted()
		emitted++
	}
	return emitted
}

func occurrenceDescription(m MatchResult) string {
	fields := make([]string, 0, len(m.ReasonFields))
	for _, f := range m.ReasonFields {
		fields = append(fields, string(f))
	}
	desc := fmt.Sprintf("Predictive restriction matched on %s during check-in screening", strings.Join(fields, ", "))
	if m.Reason != "" {
		desc += ". Reason: " + m.Reason
	}
	return desc
}

func ref(id uint) *uint {
	return &id
}
