package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "regular address", in: "applicant@example.com", want: "ap****@example.com"},
		{name: "short local part kept", in: "ab@example.com", want: "ab@example.com"},
		{name: "empty", in: "", want: ""},
		{name: "no at sign", in: "not-an-email", want: "not-an-email"},
		{name: "at sign at start", in: "@example.com", want: "@example.com"},
		{name: "at sign at end", in: "applicant@", want: "applicant@"},
		{name: "trims whitespace", in: "  applicant@example.com  ", want: "ap****@example.com"},
		{name: "unicode local part", in: "алма@example.com", want: "ал****@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RedactEmail(tt.in))
		})
	}
}

func TestRedactSessionID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vs_1N8sR****", RedactSessionID("vs_1N8sRLHT8o4Rj1KA"))
	assert.Equal(t, "short", RedactSessionID("short"))
	assert.Equal(t, "", RedactSessionID(""))
}
