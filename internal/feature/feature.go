// Package feature holds the homepage feature list and renders it into cards.
package feature

import (
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
)

// Record is one homepage feature; record order is the display order. The
// title is a message reference so it follows the page locale. The description
// is inline Markdown assembled from parts.
type Record struct {
	Title       i18n.Message
	Description []Part
}

// Part is one piece of a description: a translatable message, or fixed text
// when Message has no key.
type Part struct {
	Message i18n.Message
	Text    string
}

// T is a translated description part.
func T(m i18n.Message) Part { return Part{Message: m} }

// Text is a description part that stays the same in every locale.
func Text(s string) Part { return Part{Text: s} }

// Defaults returns the feature list shown on the homepage.
func Defaults() []Record {
	return []Record{
		{
			Title: i18n.Msg("homepage.features.support.title", "支持我"),
			Description: []Part{
				T(i18n.Msg("homepage.features.support.cta", "请给我一个⭐️")),
				Text(" [GitHub](https://github.com/chenyuan-new/blogByDocusaurus)"),
			},
		},
		{
			Title:       i18n.Msg("homepage.features.about.title", "关于我"),
			Description: []Part{Text("An always to learn FE")},
		},
		{
			Title: i18n.Msg("homepage.features.contact.title", "联系我"),
			Description: []Part{
				T(i18n.Msg("homepage.features.contact.wechat", "微信")),
				Text(": emNjOTExMTEw"),
			},
		},
	}
}

// Messages lists the message references carried by records, in display order.
func Messages(records []Record) []i18n.Message {
	out := make([]i18n.Message, 0, len(records)*2)
	for _, r := range records {
		out = append(out, r.Title)
		for _, p := range r.Description {
			if p.Message.Key != "" {
				out = append(out, p.Message)
			}
		}
	}
	return out
}

// Item is a record with its messages resolved for one locale. Description is
// inline Markdown.
type Item struct {
	Title       string
	Description string
}

// Localize resolves records through l, keeping order.
func Localize(records []Record, l i18n.Localizer) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		var desc strings.Builder
		for _, p := range r.Description {
			if p.Message.Key != "" {
				desc.WriteString(l.T(p.Message.Key))
			} else {
				desc.WriteString(p.Text)
			}
		}
		items[i] = Item{Title: l.T(r.Title.Key), Description: desc.String()}
	}
	return items
}
