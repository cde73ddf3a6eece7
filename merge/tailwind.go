package merge

// TailwindVersion identifies the conventions DefaultTable follows.
const TailwindVersion = "tailwind-v3"

func classes(id string, names ...string) Group {
	return Group{ID: id, Classes: names}
}

func anyValue(id, prefix string) Group {
	return Group{ID: id, Prefix: prefix, Any: true}
}

func oneOf(id, prefix string, values ...string) Group {
	return Group{ID: id, Prefix: prefix, Values: values}
}

func width(id, prefix string) Group {
	return Group{ID: id, Prefix: prefix, Bare: true, Number: true, Arbitrary: []string{KindLength}}
}

func bare(g Group) Group {
	g.Bare = true
	return g
}

func arbitrary(g Group, kinds ...string) Group {
	g.Arbitrary = kinds
	return g
}

var (
	fontSizes    = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl"}
	shadowSizes  = []string{"sm", "md", "lg", "xl", "2xl", "inner", "none"}
	borderStyles = []string{"solid", "dashed", "dotted", "double", "hidden", "none"}
	positions    = []string{"bottom", "center", "left", "left-bottom", "left-top", "right", "right-bottom", "right-top", "top"}
)

var gradientDirections = []string{"gradient-to-t", "gradient-to-tr", "gradient-to-r", "gradient-to-br", "gradient-to-b", "gradient-to-bl", "gradient-to-l", "gradient-to-tl"}

// DefaultTable returns a fresh copy of the built-in classifier for Tailwind
// CSS utility names. Groups sharing a prefix are tried in the order listed, so
// narrow value sets (font sizes) come before catch-alls (text colors).
func DefaultTable() *Table {
	groups := []Group{
		// Layout
		classes("display", "block", "inline-block", "inline", "flex", "inline-flex", "table", "inline-table",
			"table-caption", "table-cell", "table-column", "table-column-group", "table-footer-group",
			"table-header-group", "table-row-group", "table-row", "flow-root", "grid", "inline-grid",
			"contents", "list-item", "hidden"),
		classes("position", "static", "fixed", "absolute", "relative", "sticky"),
		classes("visibility", "visible", "invisible", "collapse"),
		classes("box-sizing", "box-border", "box-content"),
		classes("isolation", "isolate", "isolation-auto"),
		classes("sr", "sr-only", "not-sr-only"),
		oneOf("float", "float", "right", "left", "none", "start", "end"),
		oneOf("clear", "clear", "left", "right", "both", "none", "start", "end"),
		anyValue("aspect", "aspect"),
		anyValue("columns", "columns"),
		oneOf("object-fit", "object", "contain", "cover", "fill", "none", "scale-down"),
		anyValue("object-position", "object"),
		oneOf("overflow", "overflow", "auto", "hidden", "clip", "visible", "scroll"),
		oneOf("overflow-x", "overflow-x", "auto", "hidden", "clip", "visible", "scroll"),
		oneOf("overflow-y", "overflow-y", "auto", "hidden", "clip", "visible", "scroll"),
		oneOf("overscroll", "overscroll", "auto", "contain", "none"),
		anyValue("inset", "inset"),
		anyValue("inset-x", "inset-x"),
		anyValue("inset-y", "inset-y"),
		anyValue("start", "start"),
		anyValue("end", "end"),
		anyValue("top", "top"),
		anyValue("right", "right"),
		anyValue("bottom", "bottom"),
		anyValue("left", "left"),
		anyValue("z", "z"),

		// Flexbox & grid
		anyValue("basis", "basis"),
		oneOf("flex-direction", "flex", "row", "row-reverse", "col", "col-reverse"),
		oneOf("flex-wrap", "flex", "wrap", "wrap-reverse", "nowrap"),
		arbitrary(oneOf("flex", "flex", "1", "auto", "initial", "none"), KindAny),
		bare(anyValue("grow", "grow")),
		bare(anyValue("shrink", "shrink")),
		anyValue("order", "order"),
		anyValue("grid-cols", "grid-cols"),
		anyValue("col-start-end", "col"),
		anyValue("col-start", "col-start"),
		anyValue("col-end", "col-end"),
		anyValue("grid-rows", "grid-rows"),
		anyValue("row-start-end", "row"),
		anyValue("row-start", "row-start"),
		anyValue("row-end", "row-end"),
		anyValue("grid-flow", "grid-flow"),
		anyValue("auto-cols", "auto-cols"),
		anyValue("auto-rows", "auto-rows"),
		anyValue("gap", "gap"),
		anyValue("gap-x", "gap-x"),
		anyValue("gap-y", "gap-y"),
		oneOf("justify-content", "justify", "normal", "start", "end", "center", "between", "around", "evenly", "stretch"),
		anyValue("justify-items", "justify-items"),
		anyValue("justify-self", "justify-self"),
		oneOf("align-content", "content", "normal", "center", "start", "end", "between", "around", "evenly", "baseline", "stretch"),
		anyValue("align-items", "items"),
		anyValue("align-self", "self"),
		anyValue("place-content", "place-content"),
		anyValue("place-items", "place-items"),
		anyValue("place-self", "place-self"),

		// Spacing
		anyValue("p", "p"),
		anyValue("px", "px"),
		anyValue("py", "py"),
		anyValue("ps", "ps"),
		anyValue("pe", "pe"),
		anyValue("pt", "pt"),
		anyValue("pr", "pr"),
		anyValue("pb", "pb"),
		anyValue("pl", "pl"),
		anyValue("m", "m"),
		anyValue("mx", "mx"),
		anyValue("my", "my"),
		anyValue("ms", "ms"),
		anyValue("me", "me"),
		anyValue("mt", "mt"),
		anyValue("mr", "mr"),
		anyValue("mb", "mb"),
		anyValue("ml", "ml"),
		classes("space-x-reverse", "space-x-reverse"),
		classes("space-y-reverse", "space-y-reverse"),
		anyValue("space-x", "space-x"),
		anyValue("space-y", "space-y"),

		// Sizing
		anyValue("size", "size"),
		anyValue("w", "w"),
		anyValue("min-w", "min-w"),
		anyValue("max-w", "max-w"),
		anyValue("h", "h"),
		anyValue("min-h", "min-h"),
		anyValue("max-h", "max-h"),

		// Typography
		oneOf("font-family", "font", "sans", "serif", "mono"),
		arbitrary(oneOf("font-weight", "font", "thin", "extralight", "light", "normal", "medium", "semibold", "bold", "extrabold", "black"), KindNumber),
		classes("font-smoothing", "antialiased", "subpixel-antialiased"),
		classes("font-style", "italic", "not-italic"),
		classes("fvn-normal", "normal-nums"),
		classes("fvn-ordinal", "ordinal"),
		classes("fvn-slashed-zero", "slashed-zero"),
		classes("fvn-figure", "lining-nums", "oldstyle-nums"),
		classes("fvn-spacing", "proportional-nums", "tabular-nums"),
		classes("fvn-fraction", "diagonal-fractions", "stacked-fractions"),
		arbitrary(oneOf("font-size", "text", fontSizes...), KindLength),
		oneOf("text-alignment", "text", "left", "center", "right", "justify", "start", "end"),
		oneOf("text-wrap", "text", "wrap", "nowrap", "balance", "pretty"),
		classes("text-overflow", "truncate", "text-ellipsis", "text-clip"),
		anyValue("text-color", "text"),
		anyValue("tracking", "tracking"),
		anyValue("leading", "leading"),
		anyValue("line-clamp", "line-clamp"),
		oneOf("list-image", "list-image", "none"),
		oneOf("list-style-position", "list", "inside", "outside"),
		anyValue("list-style-type", "list"),
		classes("text-decoration", "underline", "overline", "line-through", "no-underline"),
		oneOf("text-decoration-style", "decoration", "solid", "dashed", "dotted", "double", "wavy"),
		{ID: "text-decoration-thickness", Prefix: "decoration", Values: []string{"auto", "from-font"}, Number: true, Arbitrary: []string{KindLength, KindNumber}},
		anyValue("text-decoration-color", "decoration"),
		anyValue("underline-offset", "underline-offset"),
		classes("text-transform", "uppercase", "lowercase", "capitalize", "normal-case"),
		anyValue("indent", "indent"),
		anyValue("vertical-align", "align"),
		anyValue("whitespace", "whitespace"),
		classes("break", "break-normal", "break-words", "break-all", "break-keep"),
		anyValue("hyphens", "hyphens"),
		anyValue("content", "content"),

		// Backgrounds
		oneOf("bg-attachment", "bg", "fixed", "local", "scroll"),
		anyValue("bg-clip", "bg-clip"),
		anyValue("bg-origin", "bg-origin"),
		oneOf("bg-repeat", "bg", "repeat", "no-repeat", "repeat-x", "repeat-y", "repeat-round", "repeat-space"),
		oneOf("bg-size", "bg", "auto", "cover", "contain"),
		oneOf("bg-position", "bg", positions...),
		{ID: "bg-image", Classes: []string{"bg-none"}, Prefix: "bg", Values: gradientDirections, Arbitrary: []string{KindImage}},
		anyValue("bg-color", "bg"),
		anyValue("gradient-from", "from"),
		anyValue("gradient-via", "via"),
		anyValue("gradient-to", "to"),

		// Borders
		bare(anyValue("rounded", "rounded")),
		bare(anyValue("rounded-s", "rounded-s")),
		bare(anyValue("rounded-e", "rounded-e")),
		bare(anyValue("rounded-t", "rounded-t")),
		bare(anyValue("rounded-r", "rounded-r")),
		bare(anyValue("rounded-b", "rounded-b")),
		bare(anyValue("rounded-l", "rounded-l")),
		bare(anyValue("rounded-ss", "rounded-ss")),
		bare(anyValue("rounded-se", "rounded-se")),
		bare(anyValue("rounded-ee", "rounded-ee")),
		bare(anyValue("rounded-es", "rounded-es")),
		bare(anyValue("rounded-tl", "rounded-tl")),
		bare(anyValue("rounded-tr", "rounded-tr")),
		bare(anyValue("rounded-br", "rounded-br")),
		bare(anyValue("rounded-bl", "rounded-bl")),
		oneOf("border-style", "border", borderStyles...),
		classes("border-collapse", "border-collapse", "border-separate"),
		width("border-w", "border"),
		width("border-w-x", "border-x"),
		width("border-w-y", "border-y"),
		width("border-w-s", "border-s"),
		width("border-w-e", "border-e"),
		width("border-w-t", "border-t"),
		width("border-w-r", "border-r"),
		width("border-w-b", "border-b"),
		width("border-w-l", "border-l"),
		anyValue("border-color", "border"),
		anyValue("border-color-x", "border-x"),
		anyValue("border-color-y", "border-y"),
		anyValue("border-color-s", "border-s"),
		anyValue("border-color-e", "border-e"),
		anyValue("border-color-t", "border-t"),
		anyValue("border-color-r", "border-r"),
		anyValue("border-color-b", "border-b"),
		anyValue("border-color-l", "border-l"),
		anyValue("border-spacing", "border-spacing"),
		width("divide-x", "divide-x"),
		classes("divide-x-reverse", "divide-x-reverse"),
		width("divide-y", "divide-y"),
		classes("divide-y-reverse", "divide-y-reverse"),
		oneOf("divide-style", "divide", borderStyles...),
		anyValue("divide-color", "divide"),
		bare(oneOf("outline-style", "outline", "none", "dashed", "dotted", "double")),
		Group{ID: "outline-w", Prefix: "outline", Number: true, Arbitrary: []string{KindLength}},
		anyValue("outline-offset", "outline-offset"),
		anyValue("outline-color", "outline"),
		Group{ID: "ring-w", Prefix: "ring", Bare: true, Number: true, Arbitrary: []string{KindLength}},
		classes("ring-w-inset", "ring-inset"),
		anyValue("ring-color", "ring"),
		Group{ID: "ring-offset-w", Prefix: "ring-offset", Number: true, Arbitrary: []string{KindLength}},
		anyValue("ring-offset-color", "ring-offset"),

		// Effects
		bare(oneOf("shadow", "shadow", shadowSizes...)),
		anyValue("shadow-color", "shadow"),
		anyValue("opacity", "opacity"),
		anyValue("mix-blend", "mix-blend"),
		anyValue("bg-blend", "bg-blend"),

		// Filters
		bare(anyValue("blur", "blur")),
		anyValue("brightness", "brightness"),
		anyValue("contrast", "contrast"),
		bare(anyValue("drop-shadow", "drop-shadow")),
		bare(anyValue("grayscale", "grayscale")),
		anyValue("hue-rotate", "hue-rotate"),
		bare(anyValue("invert", "invert")),
		anyValue("saturate", "saturate"),
		bare(anyValue("sepia", "sepia")),
		bare(anyValue("backdrop-blur", "backdrop-blur")),
		anyValue("backdrop-brightness", "backdrop-brightness"),
		anyValue("backdrop-opacity", "backdrop-opacity"),

		// Transitions & animation
		bare(anyValue("transition", "transition")),
		anyValue("duration", "duration"),
		anyValue("ease", "ease"),
		anyValue("delay", "delay"),
		anyValue("animate", "animate"),

		// Transforms
		anyValue("scale", "scale"),
		anyValue("scale-x", "scale-x"),
		anyValue("scale-y", "scale-y"),
		anyValue("rotate", "rotate"),
		anyValue("translate-x", "translate-x"),
		anyValue("translate-y", "translate-y"),
		anyValue("skew-x", "skew-x"),
		anyValue("skew-y", "skew-y"),
		anyValue("transform-origin", "origin"),

		// Interactivity
		anyValue("accent", "accent"),
		anyValue("appearance", "appearance"),
		anyValue("cursor", "cursor"),
		anyValue("caret-color", "caret"),
		oneOf("pointer-events", "pointer-events", "none", "auto"),
		bare(oneOf("resize", "resize", "none", "y", "x")),
		oneOf("scroll-behavior", "scroll", "auto", "smooth"),
		anyValue("select", "select"),
		anyValue("will-change", "will-change"),
		anyValue("touch", "touch"),

		// Tables
		oneOf("table-layout", "table", "auto", "fixed"),
		oneOf("caption", "caption", "top", "bottom"),

		// SVG
		anyValue("fill", "fill"),
		Group{ID: "stroke-w", Prefix: "stroke", Number: true, Arbitrary: []string{KindLength, KindNumber}},
		anyValue("stroke", "stroke"),
	}

	return &Table{
		Version:   TailwindVersion,
		Separator: ":",
		Groups:    groups,
		Conflicts: map[string][]string{
			"overflow":   {"overflow-x", "overflow-y"},
			"inset":      {"inset-x", "inset-y", "start", "end", "top", "right", "bottom", "left"},
			"inset-x":    {"right", "left"},
			"inset-y":    {"top", "bottom"},
			"flex":       {"basis", "grow", "shrink"},
			"gap":        {"gap-x", "gap-y"},
			"p":          {"px", "py", "ps", "pe", "pt", "pr", "pb", "pl"},
			"px":         {"pr", "pl"},
			"py":         {"pt", "pb"},
			"m":          {"mx", "my", "ms", "me", "mt", "mr", "mb", "ml"},
			"mx":         {"mr", "ml"},
			"my":         {"mt", "mb"},
			"size":       {"w", "h"},
			"font-size":  {"leading"},
			"line-clamp": {"display", "overflow"},
			"rounded": {"rounded-s", "rounded-e", "rounded-t", "rounded-r", "rounded-b", "rounded-l",
				"rounded-ss", "rounded-se", "rounded-ee", "rounded-es", "rounded-tl", "rounded-tr", "rounded-br", "rounded-bl"},
			"rounded-s": {"rounded-ss", "rounded-es"},
			"rounded-e": {"rounded-se", "rounded-ee"},
			"rounded-t": {"rounded-tl", "rounded-tr"},
			"rounded-r": {"rounded-tr", "rounded-br"},
			"rounded-b": {"rounded-br", "rounded-bl"},
			"rounded-l": {"rounded-tl", "rounded-bl"},
			"border-w": {"border-w-x", "border-w-y", "border-w-s", "border-w-e",
				"border-w-t", "border-w-r", "border-w-b", "border-w-l"},
			"border-w-x": {"border-w-r", "border-w-l"},
			"border-w-y": {"border-w-t", "border-w-b"},
			"border-color": {"border-color-x", "border-color-y", "border-color-s", "border-color-e",
				"border-color-t", "border-color-r", "border-color-b", "border-color-l"},
			"border-color-x": {"border-color-r", "border-color-l"},
			"border-color-y": {"border-color-t", "border-color-b"},
			"fvn-normal":     {"fvn-ordinal", "fvn-slashed-zero", "fvn-figure", "fvn-spacing", "fvn-fraction"},
		},
	}
}
