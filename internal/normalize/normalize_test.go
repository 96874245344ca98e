package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvwatch/sunlight/internal/normalize"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "Jane Doe", want: "jane doe"},
		{name: "LeadingTrailingWhitespace", in: "  Jane Doe  ", want: "jane doe"},
		{name: "InternalRuns", in: " jane   doe ", want: "jane doe"},
		{name: "Tabs", in: "Jane\tDoe", want: "jane doe"},
		{name: "MixedCase", in: "COMMITTEE To Elect JANE DOE", want: "committee to elect jane doe"},
		{name: "Empty", in: "", want: ""},
		{name: "OnlyWhitespace", in: "   \t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Name(tt.in))
		})
	}
}

func TestName_Idempotent(t *testing.T) {
	for _, s := range []string{"  Jane   Doe ", "x", "", "A  B\tC"} {
		once := normalize.Name(s)
		assert.Equal(t, once, normalize.Name(once))
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, normalize.Equal(" jane   doe ", "Jane Doe"))
	assert.False(t, normalize.Equal("jane doe", "jane d oe"))
}
