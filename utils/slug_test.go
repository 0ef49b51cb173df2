// utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Couple Rings!", "couple-rings"},
		{"Men's Watches", "mens-watches"},
		{"  Gold   &   Silver  ", "gold-silver"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcode Døts", "ncode-dts"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	inputs := []string{"Couple Rings!", "Men's Watches", "Gold & Silver Chains", "x"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestCleanEntries(t *testing.T) {
	got := CleanEntries([]string{"Gold", "", "  ", " Silver ", "Rose Gold"})
	assert.Equal(t, []string{"Gold", "Silver", "Rose Gold"}, got)

	assert.Empty(t, CleanEntries(nil))
	assert.Empty(t, CleanEntries([]string{"", "   "}))
}
