package header

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  []string
	}{
		{
			name:  "feed",
			props: Props{Visible: true, Title: "Go Blog", Link: "https://go.dev/blog/feed.atom"},
			want:  []string{"Go Blog", "🔗 https://go.dev/blog/feed.atom"},
		},
		{
			name:  "group without link",
			props: Props{Visible: true, Title: "Tech"},
			want:  []string{"Tech"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			assert.Equal(t, 2, lipgloss.Height(got))
		})
	}
}

func TestRenderHidden(t *testing.T) {
	assert.Empty(t, Render(Props{Title: "Tech"}))
}
