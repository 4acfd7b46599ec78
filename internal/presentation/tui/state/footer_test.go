package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tesso57/subsy/internal/application/settings"
)

func TestFooterText(t *testing.T) {
	tests := []struct {
		name          string
		session       Session
		busy          bool
		statusMessage string
		helpText      string
		want          string
	}{
		{
			name:     "help only when no status",
			session:  FeedView,
			helpText: "help",
			want:     "help",
		},
		{
			name:          "status prepended in feed view",
			session:       FeedView,
			statusMessage: "Unsubscribed from Go Blog",
			helpText:      "help",
			want:          "Unsubscribed from Go Blog\nhelp",
		},
		{
			name:          "status hidden while busy",
			session:       OptionsView,
			busy:          true,
			statusMessage: "exported",
			helpText:      "help",
			want:          "help",
		},
		{
			name:          "status hidden in quit dialog",
			session:       QuitView,
			statusMessage: "exported",
			helpText:      "help",
			want:          "help",
		},
		{
			name:          "status only when help empty",
			session:       FeedView,
			statusMessage: "  exported  ",
			want:          "exported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FooterText(tt.session, tt.busy, tt.statusMessage, tt.helpText)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewKeyMapSplitsKeys(t *testing.T) {
	keys := NewKeyMap(settings.KeyMapConfig{
		Up:          "k,up",
		ToggleGroup: "space",
		Bottom:      "G, pgdn",
	})

	assert.Equal(t, []string{"k", "up"}, keys.Up.Keys())
	assert.Equal(t, []string{" "}, keys.ToggleGroup.Keys())
	assert.Equal(t, []string{"G", "pgdown", "pgdn"}, keys.Bottom.Keys())
	assert.Equal(t, "space", keys.ToggleGroup.Help().Key)
}
