package styled

import (
	"context"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// Node is anything that renders HTML. *Element and Text are the built-in
// nodes; any templ.Component can be used as a child.
type Node = templ.Component

// Element is an HTML element with string attributes. An attribute with an
// empty value renders as a bare boolean attribute.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
}

// El builds an element. attrs may be nil.
func El(tag string, attrs map[string]string, children ...Node) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// attrName is the subset of HTML attribute names that needs no escaping.
var attrName = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)

// Render writes the element as HTML with attributes in name order.
// Attributes whose names could break out of the tag are dropped.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, name := range slices.Sorted(maps.Keys(e.Attrs)) {
		if !attrName.MatchString(name) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		if v := e.Attrs[name]; v != "" {
			b.WriteString(`="`)
			b.WriteString(templ.EscapeString(v))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if voidElements[e.Tag] {
		return nil
	}

	for _, child := range e.Children {
		if child == nil {
			continue
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.Tag+">")
	return err
}

// Text is escaped character data.
type Text string

func (t Text) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(string(t)))
	return err
}

// HTML renders n to a string. Rendering errors from custom children yield
// the output written so far.
func HTML(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	_ = n.Render(context.Background(), &b)
	return b.String()
}
