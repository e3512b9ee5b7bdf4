package sanitizex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSingleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "applicant@example.com", want: "applicant@example.com"},
		{name: "trims", in: "  document \t", want: "document"},
		{name: "collapses whitespace", in: "student \t id", want: "student id"},
		{name: "strips control chars", in: "doc\x00ument", want: "doc ument"},
		{name: "newlines become spaces", in: "line1\nline2", want: "line1 line2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanSingleLine(tt.in))
		})
	}
}
