package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/internal/layout"
)

func stackedPair(variants ...string) (*Store, []*layout.Key) {
	l := &layout.Layout{}
	var keys []*layout.Key
	for i, v := range variants {
		k := layout.NewKey(float64(i)*0.1, 0)
		k.Labels[layout.SlotMatrix] = "0,0"
		k.Labels[layout.SlotVariant] = v
		l.Keys = append(l.Keys, k)
		keys = append(keys, k)
	}
	return NewStore(l), keys
}

func TestValidateDuplicateWithoutOptions(t *testing.T) {
	s, keys := stackedPair("", "")
	report := s.Validate()

	assert.False(t, report.IsValid)
	require.Len(t, report.DuplicatesWithoutOption, 1)
	assert.Equal(t, Position{Row: 0, Col: 0}, report.DuplicatesWithoutOption[0].Position)
	assert.ElementsMatch(t, keys, report.DuplicatesWithoutOption[0].Keys)
	assert.Empty(t, report.ValidLayoutOptions)
}

func TestValidateDistinctVariantsAreValid(t *testing.T) {
	s, keys := stackedPair("0,0", "0,1")
	report := s.Validate()

	assert.True(t, report.IsValid)
	assert.Empty(t, report.DuplicatesWithoutOption)
	require.Len(t, report.ValidLayoutOptions, 1)
	assert.Equal(t, Position{Row: 0, Col: 0}, report.ValidLayoutOptions[0].Position)
	assert.ElementsMatch(t, keys, report.ValidLayoutOptions[0].Keys)
}

func TestValidateRepeatedVariantIsInvalid(t *testing.T) {
	s, _ := stackedPair("0,0", "0,0")
	assert.False(t, s.Validate().IsValid)
}

func TestValidatePartialVariantIsInvalid(t *testing.T) {
	// "1," is not a fully-specified pair, so the cluster cannot be told apart
	s, _ := stackedPair("0,0", "1,")
	assert.False(t, s.Validate().IsValid)
}

func TestValidateIgnoresIncompletePositions(t *testing.T) {
	l := &layout.Layout{}
	k1 := layout.NewKey(0, 0)
	k1.Labels[layout.SlotMatrix] = "0,"
	k2 := layout.NewKey(1, 0)
	k2.Labels[layout.SlotMatrix] = "0,"
	l.Keys = append(l.Keys, k1, k2)

	report := NewStore(l).Validate()
	assert.True(t, report.IsValid)
	assert.Empty(t, report.DuplicatesWithoutOption)
}

func TestValidateIgnoresGhosts(t *testing.T) {
	l := &layout.Layout{}
	k1 := layout.NewKey(0, 0)
	k1.Labels[layout.SlotMatrix] = "0,0"
	ghost := layout.NewKey(0, 0)
	ghost.Ghost = true
	ghost.Labels[layout.SlotMatrix] = "0,0"
	l.Keys = append(l.Keys, k1, ghost)

	assert.True(t, NewStore(l).Validate().IsValid)
}

func TestValidateNeverMutates(t *testing.T) {
	s, keys := stackedPair("", "")
	before := []string{keys[0].Labels[layout.SlotMatrix], keys[1].Labels[layout.SlotMatrix]}
	s.Validate()
	assert.Equal(t, before, []string{keys[0].Labels[layout.SlotMatrix], keys[1].Labels[layout.SlotMatrix]})
}

func TestDefaultLayoutKeys(t *testing.T) {
	l := &layout.Layout{}
	plain := layout.NewKey(0, 0)
	plain.Labels[layout.SlotMatrix] = "0,1"

	base := layout.NewKey(1, 0)
	base.Labels[layout.SlotMatrix] = "0,0"
	base.Labels[layout.SlotVariant] = "0,0"

	alt := layout.NewKey(1, 1)
	alt.Labels[layout.SlotMatrix] = "0,0"
	alt.Labels[layout.SlotVariant] = "0,1"

	l.Keys = append(l.Keys, plain, base, alt)

	got := NewStore(l).DefaultLayoutKeys()
	assert.ElementsMatch(t, []*layout.Key{plain, base}, got)
}
