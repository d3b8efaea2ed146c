package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewBoard, "board"},
		{ViewEdit, "edit"},
		{ViewLogin, "login"},
		{ViewPicker, "picker"},
		{ViewPrompt, "prompt"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_DistinctValues(t *testing.T) {
	views := []ViewType{ViewBoard, ViewEdit, ViewLogin, ViewPicker, ViewPrompt, ViewHelp}

	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view value %d", v)
		seen[v] = true
	}
}
