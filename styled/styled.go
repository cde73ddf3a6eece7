// Package styled turns variant configurations into reusable components.
//
// A Component resolves its own axes from the props it is rendered with,
// forwards every other prop to what it wraps and replaces the "class" prop
// with the resolved class string. It can wrap an HTML tag, a custom render
// function or another Component, in which case its class flows into the
// wrapped component as that component's class override.
//
//	button := styled.Must(styled.New(styled.Tag("button"), &variants.Config{
//		Base: "px-5 py-2",
//		Variants: []variants.Axis{
//			{Name: "color", Options: variants.Options{"accent": "bg-teal-500"}},
//		},
//	}))
//	styled.HTML(button.Render(styled.Props{"color": "accent"}, styled.Text("Save")))
//	// <button class="px-5 py-2 bg-teal-500">Save</button>
//
// Rendered nodes are templ components and can be used from templ templates.
package styled

import (
	"errors"
	"fmt"

	"github.com/a-h/templ"

	"github.com/yacobolo/variants"
)

// AsChild is the prop that renders the component's attributes onto its
// first child element instead of its own tag.
const AsChild = "asChild"

// ErrNilRenderer is returned by New when there is nothing to render into.
var ErrNilRenderer = errors.New("styled: nil renderer")

// Props are the attributes and variant selections a component is rendered
// with. The "class" entry is the caller's class override.
type Props = templ.Attributes

// Renderer is what a Component renders into: a Tag, a Func or another
// *Component.
type Renderer interface {
	renderer()
}

// Tag renders an HTML element with the given tag name.
type Tag string

func (Tag) renderer() {}

// Func renders a custom component from its props. The resolved class is in
// p["class"].
type Func func(p Props, children ...Node) Node

func (Func) renderer() {}

// Component is a renderer bound to a variant configuration. It is immutable
// and safe for concurrent use.
type Component struct {
	base     Renderer
	resolver *variants.Resolver
}

func (*Component) renderer() {}

// New binds cfg to base. opts are passed to variants.New.
func New(base Renderer, cfg *variants.Config, opts ...variants.Option) (*Component, error) {
	if base == nil {
		return nil, ErrNilRenderer
	}
	if c, ok := base.(*Component); ok && c == nil {
		return nil, ErrNilRenderer
	}

	r, err := variants.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("styled: %w", err)
	}
	return &Component{base: base, resolver: r}, nil
}

// Base binds a fixed class fragment to base. It panics if base is nil.
func Base(base Renderer, classes variants.ClassValue) *Component {
	return Must(New(base, &variants.Config{Base: classes}))
}

// Must panics if err is non-nil.
func Must(c *Component, err error) *Component {
	if err != nil {
		panic(err)
	}
	return c
}

// ExtractConfig returns the configuration c was built from.
func ExtractConfig(c *Component) *variants.Config {
	return c.resolver.Config()
}

// Resolver returns the resolver computing c's classes.
func (c *Component) Resolver() *variants.Resolver {
	return c.resolver
}

// Props splits p into this component's variant selection and everything
// else. The returned props hold every non-axis entry unchanged plus the
// resolved class under "class".
func (c *Component) Props(p Props) Props {
	out := make(Props, len(p)+1)
	sel := make(variants.Selection)

	for k, v := range p {
		if k == variants.ClassKey || c.resolver.HasAxis(k) {
			sel[k] = v
			continue
		}
		out[k] = v
	}

	out[variants.ClassKey] = c.resolver.Resolve(sel)
	return out
}

// Render resolves p and renders the wrapped renderer. With p[AsChild] set,
// the innermost tag is replaced by the first child element, which receives
// the forwarded attributes.
func (c *Component) Render(p Props, children ...Node) Node {
	props := c.Props(p)

	switch b := c.base.(type) {
	case *Component:
		return b.Render(props, children...)
	case Func:
		return b(props, children...)
	case Tag:
		asChild, _ := props[AsChild].(bool)
		delete(props, AsChild)
		if asChild {
			return slot(props, children)
		}
		return &Element{Tag: string(b), Attrs: attributes(props), Children: children}
	}
	return templ.NopComponent
}

// slot renders props onto the first child element. Child attributes win,
// except class, which is the slot class followed by the child's class.
func slot(props Props, children []Node) Node {
	for _, ch := range children {
		el, ok := ch.(*Element)
		if !ok {
			continue
		}

		attrs := attributes(props)
		for k, v := range el.Attrs {
			attrs[k] = v
		}
		if class := variants.Join(props[variants.ClassKey], el.Attrs[variants.ClassKey]); class != "" {
			attrs[variants.ClassKey] = class
		}
		return &Element{Tag: el.Tag, Attrs: attrs, Children: el.Children}
	}
	return templ.NopComponent
}

// attributes converts props to element attributes. nil and false values are
// dropped, true renders as a bare attribute.
func attributes(p Props) map[string]string {
	attrs := make(map[string]string, len(p))
	for k, v := range p {
		switch x := v.(type) {
		case nil:
		case string:
			if k == variants.ClassKey && x == "" {
				continue
			}
			attrs[k] = x
		case bool:
			if x {
				attrs[k] = ""
			}
		case fmt.Stringer:
			attrs[k] = x.String()
		default:
			attrs[k] = fmt.Sprint(x)
		}
	}
	return attrs
}
