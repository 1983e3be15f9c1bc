package feed

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Item is one rendered syndication record.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	PubDate     time.Time
	Author      string
	Categories  []string

	// Encoded is the full HTML body for <content:encoded>; empty means
	// the element is omitted (summary-only feeds).
	Encoded string
}

// Channel is a complete RSS 2.0 document.
type Channel struct {
	Title          string
	Link           string
	Description    string
	Language       string
	ManagingEditor string
	WebMaster      string
	SelfLink       string
	LastBuild      time.Time

	Items []Item
}

func (c Channel) XML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:content="http://purl.org/rss/1.0/modules/content/">` + "\n")
	b.WriteString("  <channel>\n")
	b.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(c.Title)))
	b.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(c.Link)))
	b.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(c.Description)))
	b.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(c.Language)))
	b.WriteString(fmt.Sprintf("    <managingEditor>%s</managingEditor>\n", escapeXML(c.ManagingEditor)))
	b.WriteString(fmt.Sprintf("    <webMaster>%s</webMaster>\n", escapeXML(c.WebMaster)))
	b.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", c.LastBuild.UTC().Format(time.RFC1123Z)))
	b.WriteString(fmt.Sprintf(`    <atom:link href="%s" rel="self" type="application/rss+xml"/>`+"\n", escapeXML(c.SelfLink)))
	for _, item := range c.Items {
		writeItem(&b, item)
	}
	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

func writeItem(b *strings.Builder, item Item) {
	b.WriteString("    <item>\n")
	b.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
	b.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
	b.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
	if item.Description != "" {
		b.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Description)))
	}
	b.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PubDate.UTC().Format(time.RFC1123Z)))
	b.WriteString(fmt.Sprintf("      <author>%s</author>\n", escapeXML(item.Author)))
	for _, cat := range item.Categories {
		b.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(cat)))
	}
	if item.Encoded != "" {
		b.WriteString(fmt.Sprintf("      <content:encoded>%s</content:encoded>\n", wrapCDATA(item.Encoded)))
	}
	b.WriteString("    </item>\n")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

// wrapCDATA keeps the document well-formed even when the body itself
// contains "]]>": the terminator is split across two sections.
func wrapCDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}
