package dialog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	var opened []string
	r.On("confirm", func(name string) {
		opened = append(opened, name)
		assert.True(t, r.IsOpen(name))
	})

	assert.False(t, r.IsOpen("confirm"))

	r.Open("confirm")
	r.Open("confirm")
	assert.True(t, r.IsOpen("confirm"))
	assert.Equal(t, []string{"confirm"}, opened)

	r.Close("confirm")
	assert.False(t, r.IsOpen("confirm"))

	r.Open("other")
	assert.True(t, r.IsOpen("other"))
	assert.Len(t, opened, 1)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: " yes ", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Send now?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Send now? (y/N)")
	}
}
