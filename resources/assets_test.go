package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundsAreEmbeddedWAV(t *testing.T) {
	for _, name := range []string{"click.wav", "end.wav"} {
		data, err := Sound(name)
		require.NoError(t, err, name)
		require.Greater(t, len(data), 44, name)
		assert.Equal(t, "RIFF", string(data[:4]), name)
		assert.Equal(t, "WAVE", string(data[8:12]), name)
	}
}

func TestSoundMissing(t *testing.T) {
	_, err := Sound("missing.wav")
	require.Error(t, err)
}

func TestLogoIsCached(t *testing.T) {
	first := MustLogo(AppIcon)
	second, err := Logo(AppIcon)

	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, AppIcon, first.Name())
	assert.NotEmpty(t, first.Content())
}
