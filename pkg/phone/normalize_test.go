package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "blank", input: "   ", want: ""},
		{name: "national number", input: "098765 43210", want: "+919876543210"},
		{name: "already e164", input: "+919876543210", want: "+919876543210"},
		{name: "foreign with country code", input: "+1 650-253-0000", want: "+16502530000"},
		{name: "garbage kept", input: " call me ", want: "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeE164(tt.input))
		})
	}
}
