package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	const canonical = "6f1c2a4e-3b5d-4c7e-9a0b-1d2e3f405162"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "canonical uuid", in: canonical, want: canonical},
		{name: "upper case uuid", in: "6F1C2A4E-3B5D-4C7E-9A0B-1D2E3F405162", want: canonical},
		{name: "braced uuid", in: "{6f1c2a4e-3b5d-4c7e-9a0b-1d2e3f405162}", want: canonical},
		{name: "urn uuid", in: "urn:uuid:6f1c2a4e-3b5d-4c7e-9a0b-1d2e3f405162", want: canonical},
		{name: "hyphenless uuid", in: "6f1c2a4e3b5d4c7e9a0b1d2e3f405162", want: canonical},
		{name: "object id", in: " 507F1F77BCF86CD799439011 ", want: "507f1f77bcf86cd799439011"},
		{name: "blank", in: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID("{6F1C2A4E-3B5D-4C7E-9A0B-1D2E3F405162}", "6f1c2a4e3b5d4c7e9a0b1d2e3f405162"))
	assert.False(t, SameID("", ""))
	assert.False(t, SameID("a", "b"))
	assert.True(t, ContainsID([]string{"x", "Org-1"}, "org-1"))
	assert.Equal(t, []string{"a", "b"}, NormalizeIDs([]string{" A", "", "b"}))
}
