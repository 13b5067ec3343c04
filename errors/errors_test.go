package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "pass --reg")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "pass --reg", hints[0])
}

func TestLookupError(t *testing.T) {
	err := NewLookupError("handle parameter", "vkCmdDraw")

	assert.True(t, IsLookupError(err))
	assert.False(t, IsStructuralError(err))
	assert.False(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "handle parameter not found in vkCmdDraw")

	wrapped := Wrap(err, "classify")
	assert.True(t, IsLookupError(wrapped))
}

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		structural    bool
		configuration bool
	}{
		{"structural", NewStructuralError("param %s has no type", "pInfo"), true, false},
		{"configuration", NewConfigurationError("missing %s", "--dest"), false, true},
		{"wrapped configuration", WrapConfiguration(New("open failed"), "reading profile"), false, true},
		{"plain", New("plain"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.structural, IsStructuralError(tt.err))
			assert.Equal(t, tt.configuration, IsConfigurationError(tt.err))
			assert.False(t, IsLookupError(tt.err))
		})
	}
}

func TestWrapConfigurationNil(t *testing.T) {
	assert.NoError(t, WrapConfiguration(nil, "ignored"))
}
