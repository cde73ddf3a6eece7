// Package variants resolves declarative class-name variants into a single
// merged class string for UI components.
//
// A Config declares a base fragment, ordered variant axes with named options,
// default selections and compound rules. A Resolver built from it turns caller
// selections into one class string in which later conflicting utility classes
// replace earlier ones.
//
// # Resolving
//
//	button := variants.MustNew(&variants.Config{
//		Base: "px-5 py-2",
//		Variants: []variants.Axis{
//			{Name: "color", Options: variants.Options{"neutral": "bg-slate-500"}},
//			{Name: "size", Options: variants.Options{
//				"small": "text-xs px-4",
//				"large": "text-base px-6",
//			}},
//		},
//		DefaultVariants: variants.Selection{"size": "small"},
//	})
//	button.Resolve(variants.Selection{"color": "neutral"})
//	// "py-2 bg-slate-500 text-xs px-4"
//
// # Joining classes
//
// Cx flattens nested class values and merges them:
//
//	variants.Cx("text-lg", nil, []string{"xl:text-lg", "text-xl"}) // "xl:text-lg text-xl"
//
// Conflict rules come from the merge package. Use WithMerger or CxWith to
// resolve against a custom classifier table.
//
// # CLI Tool
//
// The variants command checks definition files, generates typed props and
// serves a resolve playground. Install with:
//
//	go install github.com/yacobolo/variants/cmd/variants@latest
package variants
