// Package opml serializes subscriptions as OPML.
package opml

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/tesso57/subsy/internal/domain/subscription"
)

// TreeSource provides the group/feed tree to export.
type TreeSource interface {
	GroupsWithFeeds(ctx context.Context) ([]subscription.GroupWithFeed, error)
}

type outline struct {
	XMLName  xml.Name  `xml:"outline"`
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	FullText string    `xml:"isFullContent,attr,omitempty"`
	Notify   string    `xml:"isNotification,attr,omitempty"`
	Children []outline `xml:"outline,omitempty"`
}

type head struct {
	XMLName     xml.Name `xml:"head"`
	Title       string   `xml:"title"`
	DateCreated string   `xml:"dateCreated"`
}

type body struct {
	XMLName  xml.Name  `xml:"body"`
	Outlines []outline `xml:"outline"`
}

type document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    head     `xml:"head"`
	Body    body     `xml:"body"`
}

// Exporter implements usecase.OpmlRepository.
type Exporter struct {
	Source TreeSource
	Title  string
	Now    func() time.Time
}

// NewExporter creates an exporter over source.
func NewExporter(source TreeSource) *Exporter {
	return &Exporter{Source: source, Title: "Subsy Subscriptions", Now: time.Now}
}

// SaveToString renders every group and feed as OPML 2.0.
func (e *Exporter) SaveToString(ctx context.Context) (string, error) {
	tree, err := e.Source.GroupsWithFeeds(ctx)
	if err != nil {
		return "", fmt.Errorf("load subscriptions: %w", err)
	}
	return Render(tree, e.Title, e.now())
}

// Render builds the OPML document for tree. Groups become parent outlines
// and empty groups are kept.
func Render(tree []subscription.GroupWithFeed, title string, created time.Time) (string, error) {
	outlines := make([]outline, 0, len(tree))
	for _, g := range tree {
		children := make([]outline, 0, len(g.Feeds))
		for _, f := range g.Feeds {
			children = append(children, outline{
				Text:     f.Name,
				Title:    f.Name,
				Type:     "rss",
				XMLURL:   f.URL,
				HTMLURL:  f.URL,
				FullText: flag(f.IsFullContent),
				Notify:   flag(f.IsNotification),
			})
		}
		outlines = append(outlines, outline{Text: g.Group.Name, Title: g.Group.Name, Children: children})
	}

	doc := document{
		Version: "2.0",
		Head:    head{Title: title, DateCreated: created.Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}

func flag(v bool) string {
	if !v {
		return ""
	}
	return "true"
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
