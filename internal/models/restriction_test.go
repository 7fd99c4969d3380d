package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredictiveRestriction_Scopes(t *testing.T) {
	r := PredictiveRestriction{DocumentTypeIDs: "[1,2]", DestinationIDs: ""}

	assert.True(t, r.AllowsDocumentType(1))
	assert.True(t, r.AllowsDocumentType(2))
	assert.False(t, r.AllowsDocumentType(3))

	// Empty scope means any destination.
	assert.True(t, r.AllowsDestination(99))

	// An explicit empty array does not constrain either.
	r.DestinationIDs = "[]"
	assert.True(t, r.AllowsDestination(99))

	// A scope that fails to parse excludes everything.
	r.DestinationIDs = "{broken"
	assert.False(t, r.AllowsDestination(99))
}

func TestPartialRestriction_AllowsDocumentType(t *testing.T) {
	r := PartialRestriction{}
	assert.True(t, r.AllowsDocumentType(1), "nil scope accepts any document type")

	scoped := uint(2)
	r.DocumentTypeID = &scoped
	assert.True(t, r.AllowsDocumentType(2))
	assert.False(t, r.AllowsDocumentType(1))
}

func TestRestriction_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&CommonRestriction{}).Expired(now), "nil expiry never expires")
	assert.True(t, (&CommonRestriction{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&CommonRestriction{ExpiresAt: &future}).Expired(now))
	// Boundary: expiring exactly now counts as expired.
	assert.True(t, (&PartialRestriction{ExpiresAt: &now}).Expired(now))
	assert.True(t, (&PredictiveRestriction{ExpiresAt: &past}).Expired(now))
}
