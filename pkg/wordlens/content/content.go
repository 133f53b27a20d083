// Package content extracts the visible text of an HTML page together with
// its title, headings and text/HTML ratio.
package content

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxHTMLSize bounds how much markup Extract reads.
const MaxHTMLSize = 10 << 20

// Page is the analysable view of one document.
type Page struct {
	URL           string   `json:"url,omitempty"`
	Title         string   `json:"title,omitempty"`
	Headings      []string `json:"headings,omitempty"`
	Text          string   `json:"text"`
	TextHTMLRatio float64  `json:"textHtmlRatio"`
	HTMLLength    int      `json:"htmlLength,omitempty"`
}

// FromText wraps plain text in a Page with the given ratio.
func FromText(text string, ratio float64) Page {
	return Page{Text: text, TextHTMLRatio: ratio}
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
	atom.Head:     true,
	atom.Svg:      true,
}

var headings = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
}

// inline elements do not break words apart
var inline = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Bdi: true, atom.Bdo: true,
	atom.Cite: true, atom.Code: true, atom.Data: true, atom.Dfn: true, atom.Em: true,
	atom.I: true, atom.Kbd: true, atom.Mark: true, atom.Q: true, atom.S: true,
	atom.Samp: true, atom.Small: true, atom.Span: true, atom.Strong: true, atom.Sub: true,
	atom.Sup: true, atom.Time: true, atom.U: true, atom.Var: true, atom.Wbr: true,
}

// Extract parses an HTML document and returns its visible text.
func Extract(r io.Reader) (Page, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxHTMLSize))
	if err != nil {
		return Page{}, fmt.Errorf("read html: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page{Title: findTitle(doc)}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.DataAtom] || !visible(n) {
				return
			}
			if headings[n.DataAtom] {
				if h := collapse(nodeText(n)); h != "" {
					page.Headings = append(page.Headings, h)
				}
			}
			if !inline[n.DataAtom] {
				buf.WriteByte(' ')
				defer buf.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	page.Text = collapse(buf.String())
	page.HTMLLength = collapsedLength(raw)
	page.TextHTMLRatio = Ratio(page.Text, page.HTMLLength)
	return page, nil
}

// Ratio returns round(len(text) / htmlLength * 100), 0 for empty HTML.
func Ratio(text string, htmlLength int) float64 {
	if htmlLength == 0 {
		return 0
	}
	return math.Round(float64(utf8.RuneCountInString(text)) / float64(htmlLength) * 100)
}

// collapsedLength counts the characters of raw after collapse, without
// copying it into a string.
func collapsedLength(raw []byte) int {
	fields := bytes.Fields(raw)
	if len(fields) == 0 {
		return 0
	}
	n := len(fields) - 1
	for _, f := range fields {
		n += utf8.RuneCount(f)
	}
	return n
}

func visible(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return false
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return false
			}
		}
	}
	return true
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return collapse(nodeText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
