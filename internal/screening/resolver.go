package screening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/metrics"
	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/pattern"
)

// VisitorAttributes are the candidate fields a check-in form submits
// for screening. ID is nil for visitors not yet in the directory.
type VisitorAttributes struct {
	ID             *uint  `json:"id,omitempty"`
	Document       string `json:"document"`
	DocumentTypeID uint   `json:"document_type_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
}

// Resolution is the outcome of one screening pass: every match from
// every source, in Common -> Partial -> Predictive order, plus
// non-fatal pattern warnings.
type Resolution struct {
	Matches  []MatchResult `json:"matches"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Severity aggregates the matches (see Aggregate).
func (r Resolution) Severity() models.Severity {
	return Aggregate(r.Matches)
}

// Restricted reports whether any restriction matched.
func (r Resolution) Restricted() bool {
	return len(r.Matches) > 0
}

// Resolver queries the three restriction sources and evaluates their
// matching strategies against a visitor. It holds no per-call state.
type Resolver struct {
	common      CommonSource
	partials    PartialSource
	predictives PredictiveSource
	now         func() time.Time
}

// NewResolver builds a Resolver over the database-backed sources.
func NewResolver(db *gorm.DB) *Resolver {
	src := NewGormSources(db)
	return NewResolverWithSources(src, src, predictiveAdapter{src})
}

// NewResolverWithSources builds a Resolver over explicit sources.
func NewResolverWithSources(common CommonSource, partials PartialSource, predictives PredictiveSource) *Resolver {
	return &Resolver{
		common:      common,
		partials:    partials,
		predictives: predictives,
		now:         time.Now,
	}
}

// Resolve returns every restriction matching the visitor. The three
// source queries run concurrently; the returned order is always
// Common -> Partial -> Predictive regardless of completion order.
// A source read failure aborts the whole resolution: the caller must
// treat the visitor as unresolved and block the check-in, never as
// unrestricted. DestinationID scopes predictive restrictions and is
// skipped when nil.
func (r *Resolver) Resolve(ctx context.Context, visitor VisitorAttributes, destinationID *uint) (Resolution, error) {
	now := r.now()
	upperName := strings.ToUpper(visitor.Name)

	var (
		commonMatches     []MatchResult
		partialMatches    []MatchResult
		predictiveMatches []MatchResult
		partialWarnings   []Warning
		predictiveWarns   []Warning
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if visitor.ID == nil {
			return nil
		}
		hits, err := r.common.ActiveForVisitor(ctx, *visitor.ID, now)
		if err != nil {
			return fmt.Errorf("query common restrictions: %w", err)
		}
		for _, hit := range hits {
			// Identity binding: no pattern evaluation at all.
			commonMatches = append(commonMatches, MatchResult{
				SourceKind:    SourceCommon,
				RestrictionID: hit.ID,
				Reason:        hit.Reason,
				ReasonFields:  []ReasonField{ReasonIdentity},
				Severity:      hit.Severity,
				ExpiresAt:     hit.ExpiresAt,
			})
		}
		return nil
	})

	g.Go(func() error {
		candidates, err := r.partials.ActiveCandidates(ctx, now)
		if err != nil {
			return fmt.Errorf("query partial restrictions: %w", err)
		}
		for _, cand := range candidates {
			if !cand.AllowsDocumentType(visitor.DocumentTypeID) {
				continue
			}
			fields, warns := matchFields(SourcePartial, cand.ID, []fieldProbe{
				{ReasonDocument, "partial_document", cand.PartialDocument, visitor.Document},
				{ReasonName, "partial_name", cand.PartialName, upperName},
				{ReasonPhone, "phone", cand.Phone, visitor.Phone},
			})
			partialWarnings = append(partialWarnings, warns...)
			if len(fields) == 0 {
				continue
			}
			partialMatches = append(partialMatches, MatchResult{
				SourceKind:    SourcePartial,
				RestrictionID: cand.ID,
				Reason:        cand.Reason,
				ReasonFields:  fields,
				Severity:      cand.Severity,
				ExpiresAt:     cand.ExpiresAt,
			})
		}
		return nil
	})

	g.Go(func() error {
		candidates, err := r.predictives.ActiveCandidates(ctx, now)
		if err != nil {
			return fmt.Errorf("query predictive restrictions: %w", err)
		}
		for _, cand := range candidates {
			if !cand.AllowsDocumentType(visitor.DocumentTypeID) {
				continue
			}
			if destinationID != nil && !cand.AllowsDestination(*destinationID) {
				continue
			}
			fields, warns := matchFields(SourcePredictive, cand.ID, []fieldProbe{
				{ReasonName, "name_pattern", cand.NamePattern, upperName},
				{ReasonDocument, "document_number_pattern", cand.DocumentNumberPattern, visitor.Document},
			})
			predictiveWarns = append(predictiveWarns, warns...)
			if len(fields) == 0 {
				continue
			}
			predictiveMatches = append(predictiveMatches, MatchResult{
				SourceKind:     SourcePredictive,
				RestrictionID:  cand.ID,
				Reason:         cand.Reason,
				ReasonFields:   fields,
				Severity:       cand.Severity,
				ExpiresAt:      cand.ExpiresAt,
				AutoOccurrence: cand.AutoOccurrence,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Resolution{}, err
	}

	metrics.IncResolution()

	res := Resolution{}
	res.Matches = append(res.Matches, commonMatches...)
	res.Matches = append(res.Matches, partialMatches...)
	res.Matches = append(res.Matches, predictiveMatches...)
	res.Warnings = append(res.Warnings, partialWarnings...)
	res.Warnings = append(res.Warnings, predictiveWarns...)

	for _, m := range res.Matches {
		metrics.IncMatch(string(m.SourceKind))
	}

	return res, nil
}

type fieldProbe struct {
	reason    ReasonField
	fieldName string
	pat       *string
	candidate string
}

// matchFields evaluates each configured pattern field and returns the
// reason fields that matched (logical OR across fields). A pattern
// that fails to compile contributes a warning and no match.
func matchFields(kind SourceKind, restrictionID uint, probes []fieldProbe) ([]ReasonField, []Warning) {
	var fields []ReasonField
	var warnings []Warning
	for _, p := range probes {
		if p.pat == nil {
			continue
		}
		m, err := pattern.Compile(*p.pat)
		if err != nil {
			metrics.IncPatternError()
			warnings = append(warnings, Warning{
				SourceKind:    kind,
				RestrictionID: restrictionID,
				Field:         p.fieldName,
				Pattern:       *p.pat,
				Message:       err.Error(),
			})
			continue
		}
		if m.Matches(p.candidate) {
			fields = append(fields, p.reason)
		}
	}
	return fields, warnings
}
