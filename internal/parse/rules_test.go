package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesArrowForm(t *testing.T) {
	rules, skippedEntries, err := Rules("time->etch_rate:-10;temperature->selectivity:0.5:5")
	require.NoError(t, err)
	assert.Empty(t, skippedEntries)
	require.Len(t, rules, 2)

	assert.Equal(t, ImpactRule{Source: "time", Target: "etch_rate", Effect: -10}, rules[0])
	assert.Equal(t, ImpactRule{Source: "temperature", Target: "selectivity", Effect: 0.5, PerUnit: 5}, rules[1])
}

func TestRulesLegacyFormDiscardsLabel(t *testing.T) {
	rules, _, err := Rules("rule1:etch_rate:-10")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Source)
	assert.Equal(t, "etch_rate", rules[0].Target)
	assert.InDelta(t, -10.0, rules[0].Effect, 1e-9)
}

// Arrow and legacy forms describe the same target and effect.
func TestRulesFormEquivalence(t *testing.T) {
	arrow, _, err := Rules("time->etch_rate:-10")
	require.NoError(t, err)
	legacy, _, err := Rules("rule1:etch_rate:-10")
	require.NoError(t, err)

	assert.Equal(t, arrow[0].Target, legacy[0].Target)
	assert.InDelta(t, arrow[0].Effect, legacy[0].Effect, 1e-9)
}

func TestRulesZeroPerUnitRejected(t *testing.T) {
	_, _, err := Rules("time->etch_rate:-10:0")
	assert.ErrorIs(t, err, ErrAllEntriesInvalid)
}

func TestRulesEmptyInput(t *testing.T) {
	_, _, err := Rules("")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRulesSkipRecovery(t *testing.T) {
	rules, skippedEntries, err := Rules("garbage;time->etch_rate:-10")
	require.NoError(t, err)
	assert.Len(t, skippedEntries, 1)
	require.Len(t, rules, 1)
	assert.Equal(t, "etch_rate", rules[0].Target)
}

func TestChangesFlatForm(t *testing.T) {
	changes, skippedEntries, err := Changes("temperature:60:65:0.8;time:50:55:-0.3")
	require.NoError(t, err)
	assert.Empty(t, skippedEntries)
	require.Len(t, changes, 2)

	assert.Equal(t, Change{Param: "temperature", Start: 60, End: 65, Sensitivity: 0.8}, changes[0])
	assert.Equal(t, Change{Param: "time", Start: 50, End: 55, Sensitivity: -0.3}, changes[1])
}

func TestChangesExpandedForm(t *testing.T) {
	changes, _, err := Changes("temperature:start:60,end:65,sensitivity:0.8")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Param: "temperature", Start: 60, End: 65, Sensitivity: 0.8}, changes[0])
}

// Flat and expanded forms produce identical structures.
func TestChangesFormEquivalence(t *testing.T) {
	flat, _, err := Changes("pressure:28:30:0.5")
	require.NoError(t, err)
	expanded, _, err := Changes("pressure:start:28,end:30,sensitivity:0.5")
	require.NoError(t, err)
	assert.Equal(t, flat, expanded)
}

func TestChangesMissingSubKey(t *testing.T) {
	_, _, err := Changes("temperature:start:60,end:65")
	assert.ErrorIs(t, err, ErrAllEntriesInvalid)
}

func TestInteractionsSeparators(t *testing.T) {
	multiply, _, err := Interactions("temperature×pressure:-1.5")
	require.NoError(t, err)
	star, _, err := Interactions("temperature*pressure:-1.5")
	require.NoError(t, err)
	assert.Equal(t, multiply, star)

	require.Len(t, multiply, 1)
	assert.Equal(t, Interaction{ParamA: "temperature", ParamB: "pressure", Effect: -1.5}, multiply[0])
}

func TestInteractionsWithTarget(t *testing.T) {
	its, _, err := Interactions("temperature×time->uniformity:-0.8")
	require.NoError(t, err)
	require.Len(t, its, 1)
	assert.Equal(t, Interaction{ParamA: "temperature", ParamB: "time", Target: "uniformity", Effect: -0.8}, its[0])
}

func TestInteractionsMalformed(t *testing.T) {
	_, _, err := Interactions("temperature:pressure")
	assert.ErrorIs(t, err, ErrAllEntriesInvalid)
}
