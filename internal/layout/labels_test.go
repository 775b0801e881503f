package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		label string
		row   *int
		col   *int
	}{
		{"3,5", Index(3), Index(5)},
		{"0,0", Index(0), Index(0)},
		{"3,", Index(3), nil},
		{",5", nil, Index(5)},
		{"", nil, nil},
		{",", nil, nil},
		{"a,b", nil, nil},
		{"-1,2", nil, Index(2)},
		{"3", nil, nil},  // no comma: not a pair
		{" 3,5", nil, Index(5)}, // no whitespace tolerance
		{"10,12", Index(10), Index(12)},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			a := ParseAssignment(tt.label)
			if tt.row == nil {
				assert.Nil(t, a.Row)
			} else {
				require.NotNil(t, a.Row)
				assert.Equal(t, *tt.row, *a.Row)
			}
			if tt.col == nil {
				assert.Nil(t, a.Col)
			} else {
				require.NotNil(t, a.Col)
				assert.Equal(t, *tt.col, *a.Col)
			}
		})
	}
}

func TestAssignmentRoundTrip(t *testing.T) {
	// format(parse(label)) == label for well-formed labels
	for _, label := range []string{"3,5", "3,", ",5", "0,0", "", "10,0"} {
		assert.Equal(t, label, ParseAssignment(label).String(), "label %q", label)
	}
}

func TestAssignmentString(t *testing.T) {
	assert.Equal(t, "", Assignment{}.String())
	assert.Equal(t, "2,", Assignment{Row: Index(2)}.String())
	assert.Equal(t, ",7", Assignment{Col: Index(7)}.String())
	assert.Equal(t, "2,7", Assignment{Row: Index(2), Col: Index(7)}.String())
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("1,2")
	require.True(t, ok)
	assert.Equal(t, Variant{Option: 1, Choice: 2}, v)

	v, ok = ParseVariant("0,0")
	require.True(t, ok)
	assert.Equal(t, Variant{}, v)

	// Both parts must be present and non-negative
	for _, label := range []string{"", "1,", ",2", "1", "-1,0", "0,-1", "a,0"} {
		_, ok := ParseVariant(label)
		assert.False(t, ok, "label %q", label)
	}
}

func TestKeyCenters(t *testing.T) {
	k := NewKey(2, 1)
	assert.InDelta(t, 2.5, k.Center().X, 1e-9)
	assert.InDelta(t, 1.5, k.Center().Y, 1e-9)

	// Unsized key defaults to 1u
	k2 := &Key{X: 0, Y: 0}
	assert.InDelta(t, 0.5, k2.Center().X, 1e-9)

	// 180 degree rotation around the key's own center is a no-op
	k.RotationAngle = 180
	k.RotationX = 2.5
	k.RotationY = 1.5
	rc := k.RotatedCenter()
	assert.InDelta(t, 2.5, rc.X, 1e-9)
	assert.InDelta(t, 1.5, rc.Y, 1e-9)

	// 90 degrees around the origin
	k3 := NewKey(1, 0) // center (1.5, 0.5)
	k3.RotationAngle = 90
	rc3 := k3.RotatedCenter()
	assert.InDelta(t, -0.5, rc3.X, 1e-9)
	assert.InDelta(t, 1.5, rc3.Y, 1e-9)
}

func TestKeyMatrixAccessors(t *testing.T) {
	k := NewKey(0, 0)
	k.SetMatrix(Assignment{Row: Index(3)})
	assert.Equal(t, "3,", k.Labels[SlotMatrix])

	a := k.Matrix()
	require.NotNil(t, a.Row)
	assert.Equal(t, 3, *a.Row)
	assert.Nil(t, a.Col)

	k.Labels[SlotVariant] = "0,1"
	v, ok := k.Variant()
	require.True(t, ok)
	assert.Equal(t, Variant{Option: 0, Choice: 1}, v)
}

func TestAnnotatable(t *testing.T) {
	k := NewKey(0, 0)
	assert.True(t, k.Annotatable())
	k.Ghost = true
	assert.False(t, k.Annotatable())
	k.Ghost = false
	k.Decal = true
	assert.False(t, k.Annotatable())
}
