// Package i18n holds the localized user-facing message templates.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	deleteToast    = "Unsubscribed from %s"
	unsubscribeTip = "Unsubscribe from %s? Its articles will be removed."
	exportToast    = "Exported subscriptions to %s"
	unsubscribe    = "Unsubscribe"
	renameTitle    = "Rename feed"
	newGroupTitle  = "New group"
)

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

var japanese = map[string]string{
	deleteToast:    "%s の購読を解除しました",
	unsubscribeTip: "%s の購読を解除しますか? 記事も削除されます。",
	exportToast:    "購読リストを %s に書き出しました",
	unsubscribe:    "購読解除",
	renameTitle:    "フィード名の変更",
	newGroupTitle:  "新しいグループ",
}

func init() {
	if err := register(language.Japanese, japanese); err != nil {
		panic(err)
	}
}

// register adds translations for tag to the default catalog.
func register(tag language.Tag, msgs map[string]string) error {
	for key, msg := range msgs {
		if err := message.SetString(tag, key, msg); err != nil {
			return fmt.Errorf("register %s message %q: %w", tag, key, err)
		}
	}
	return nil
}

// Messages formats templates for one locale.
type Messages struct {
	p *message.Printer
}

// New returns messages for locale, falling back to English.
func New(locale string) Messages {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	for _, s := range supported {
		if b, _ := s.Base(); b == base {
			return Messages{p: message.NewPrinter(s)}
		}
	}
	return Messages{p: message.NewPrinter(language.English)}
}

func (m Messages) printer() *message.Printer {
	if m.p == nil {
		return message.NewPrinter(language.English)
	}
	return m.p
}

// DeleteToast is shown after a feed was unsubscribed.
func (m Messages) DeleteToast(feedName string) string {
	return m.printer().Sprintf(deleteToast, feedName)
}

// UnsubscribeTip is the body of the delete confirmation.
func (m Messages) UnsubscribeTip(feedName string) string {
	return m.printer().Sprintf(unsubscribeTip, feedName)
}

// ExportToast is shown after OPML was written.
func (m Messages) ExportToast(path string) string {
	return m.printer().Sprintf(exportToast, path)
}

// Unsubscribe labels the delete action.
func (m Messages) Unsubscribe() string { return m.printer().Sprintf(unsubscribe) }

// RenameTitle heads the rename field.
func (m Messages) RenameTitle() string { return m.printer().Sprintf(renameTitle) }

// NewGroupTitle heads the new group field.
func (m Messages) NewGroupTitle() string { return m.printer().Sprintf(newGroupTitle) }
