package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidVersionTag(t *testing.T) {
	valid := []string{"1", "1.2", "1.2.3", "1.2.*", "*", "10.20.30", "0.0.0"}
	for _, v := range valid {
		assert.True(t, IsValidVersionTag(v), "expected %q to be valid", v)
	}

	invalid := []string{"", "modified", "created", "2.0.0-beta", "1.0.0+build.1", "1.2.3.4", "v1.2.3", "1..2", "1.x", "**", "1.2."}
	for _, v := range invalid {
		assert.False(t, IsValidVersionTag(v), "expected %q to be invalid", v)
	}
}

func TestIsStrictSemver(t *testing.T) {
	assert.True(t, IsStrictSemver("1.2.3"))
	assert.False(t, IsStrictSemver("1.2"))
	assert.False(t, IsStrictSemver("1.2.*"))
	assert.False(t, IsStrictSemver("2.0.0-beta"))
	assert.False(t, IsStrictSemver("1.0.0+build"))
	assert.False(t, IsStrictSemver("modified"))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.2.0", "1.10.0", -1},
		{"1.0.10", "1.0.9", 1},
		{"1", "1.0.0", 0},
		{"1.2", "1.2.1", -1},
		{"1.2.*", "1.2.0", 0},
		{"01.2.3", "1.2.3", 0},
		{"99999999999999999999999.0.0", "1.0.0", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.a, tt.b), "Compare(%q, %q)", tt.a, tt.b)
	}
}

func TestSortDescending(t *testing.T) {
	versions := []string{"1.1.5", "3.0.0", "1.2.0", "2.10.1", "2.9.9"}
	SortDescending(versions)
	assert.Equal(t, []string{"3.0.0", "2.10.1", "2.9.9", "1.2.0", "1.1.5"}, versions)
}

func TestSortDescending_TriplesInOrder(t *testing.T) {
	// a > b > c must come out as [a, b, c] whatever the input order.
	a, b, c := "4.1.0", "4.0.12", "0.9.9"
	for _, in := range [][]string{{a, b, c}, {c, b, a}, {b, a, c}, {c, a, b}} {
		got := append([]string(nil), in...)
		SortDescending(got)
		assert.Equal(t, []string{a, b, c}, got)
	}
}

func TestSortDescending_Stable(t *testing.T) {
	versions := []string{"1.2", "1.2.0", "1.2.*"}
	SortDescending(versions)
	assert.Equal(t, []string{"1.2", "1.2.0", "1.2.*"}, versions)
}

func TestSelectLatest(t *testing.T) {
	got, ok := SelectLatest([]string{"1.0.0", "1.2.0", "1.1.5"}, nil)
	require.True(t, ok)
	assert.Equal(t, "1.2.0", got)

	got, ok = SelectLatest([]string{"2.0.0-beta", "modified", "1.0.0"}, nil)
	require.True(t, ok)
	assert.Equal(t, "1.0.0", got)

	_, ok = SelectLatest(nil, nil)
	assert.False(t, ok)

	_, ok = SelectLatest([]string{"modified", "created", "latest"}, nil)
	assert.False(t, ok)
}

func TestSelectLatest_CustomPredicate(t *testing.T) {
	got, ok := SelectLatest([]string{"3.0", "2.5.1", "modified"}, IsStrictSemver)
	require.True(t, ok)
	assert.Equal(t, "2.5.1", got)
}
