package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestDeleteToast(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en", want: "Unsubscribed from Go Blog"},
		{locale: "ja", want: "Go Blog の購読を解除しました"},
		{locale: "ja-JP", want: "Go Blog の購読を解除しました"},
		{locale: "fr", want: "Unsubscribed from Go Blog"},
		{locale: "", want: "Unsubscribed from Go Blog"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.locale).DeleteToast("Go Blog"))
		})
	}
}

func TestZeroValueUsesEnglish(t *testing.T) {
	var m Messages
	assert.Equal(t, "Unsubscribe", m.Unsubscribe())
	assert.Contains(t, m.UnsubscribeTip("A"), "Unsubscribe from A?")
	assert.Equal(t, "Exported subscriptions to /tmp/x.opml", m.ExportToast("/tmp/x.opml"))
}

func TestJapaneseTitles(t *testing.T) {
	m := New("ja")
	assert.Equal(t, "購読解除", m.Unsubscribe())
	assert.Equal(t, "フィード名の変更", m.RenameTitle())
	assert.Equal(t, "新しいグループ", m.NewGroupTitle())
}

func TestRegisterAddsCatalogEntries(t *testing.T) {
	require.NoError(t, register(language.German, map[string]string{renameTitle: "Feed umbenennen"}))
	assert.Equal(t, "Feed umbenennen", message.NewPrinter(language.German).Sprintf(renameTitle))
}

func TestJapaneseCatalogIsComplete(t *testing.T) {
	p := message.NewPrinter(language.Japanese)
	for key, want := range japanese {
		if strings.Contains(key, "%s") {
			assert.Equal(t, strings.ReplaceAll(want, "%s", "X"), p.Sprintf(key, "X"), key)
			continue
		}
		assert.Equal(t, want, p.Sprintf(key), key)
	}
}
