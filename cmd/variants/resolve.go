package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants"
	"github.com/yacobolo/variants/internal/definitions"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <component> [axis=option...]",
		Short: "Resolve a component selection to its class string",
		Long: `Resolve a component from the definition files for the given selection.
Axes not named fall back to their defaults; boolean axes fall back to false.`,
		Example: `  variants resolve button color=primary size=lg
  variants resolve button disabled=true --class "mt-4" --explain`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: configured,
		RunE:    runResolve,
	}

	f := cmd.Flags()
	f.String("class", "", "Override classes appended after all variant fragments")
	f.Bool("strict", false, "Reject unknown axes, unknown options and missing required axes")
	f.Bool("json", false, "Print the resolution as JSON")
	f.Bool("explain", false, "Print effective options and fragments")
	return cmd
}

type resolveOutput struct {
	Component string            `json:"component"`
	Class     string            `json:"class"`
	Effective map[string]string `json:"effective"`
	Fragments []string          `json:"fragments"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	sel, err := parseSelection(args[1:])
	if err != nil {
		return err
	}
	if class, _ := cmd.Flags().GetString("class"); class != "" {
		if _, ok := sel[variants.ClassKey]; ok {
			return fmt.Errorf("class given both as %s= and --class", variants.ClassKey)
		}
		sel[variants.ClassKey] = class
	}

	resolver, err := loadResolver(args[0])
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict {
		if err := resolver.Validate(sel); err != nil {
			return err
		}
	}

	out := resolveOutput{
		Component: args[0],
		Class:     resolver.Resolve(sel),
		Effective: resolver.Effective(sel),
	}
	for _, f := range resolver.Fragments(sel) {
		if class := variants.Join(f); class != "" {
			out.Fragments = append(out.Fragments, class)
		}
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		axes := make([]string, 0, len(out.Effective))
		for axis := range out.Effective {
			axes = append(axes, axis)
		}
		slices.Sort(axes)

		fmt.Fprintf(w, "Component: %s\n", out.Component)
		for _, axis := range axes {
			fmt.Fprintf(w, "  %s = %s\n", axis, out.Effective[axis])
		}
		fmt.Fprintln(w, "Fragments:")
		for i, frag := range out.Fragments {
			fmt.Fprintf(w, "  %d. %s\n", i+1, frag)
		}
		fmt.Fprintf(w, "Class: %s\n", out.Class)
		return nil
	}

	fmt.Fprintln(w, out.Class)
	return nil
}

// parseSelection turns axis=option arguments into a selection. The class
// key is accepted as an alternative to --class.
func parseSelection(args []string) (variants.Selection, error) {
	sel := variants.Selection{}
	for _, arg := range args {
		axis, option, ok := strings.Cut(arg, "=")
		if !ok || axis == "" {
			return nil, fmt.Errorf("invalid selection %q (want axis=option)", arg)
		}
		if _, dup := sel[axis]; dup {
			return nil, fmt.Errorf("axis %q selected more than once", axis)
		}
		sel[axis] = option
	}
	return sel, nil
}

// loadResolver loads the definition files and builds the resolver for the
// named component.
func loadResolver(name string) (*variants.Resolver, error) {
	set, err := definitions.LoadAll(definitionGlobs())
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}

	comp, ok := set.Lookup(name)
	if !ok {
		if len(set.Errors) > 0 {
			return nil, fmt.Errorf("unknown component %q: %w", name, errors.Join(set.Errors...))
		}
		return nil, fmt.Errorf("unknown component %q", name)
	}

	opts := []variants.Option{}
	m, err := loadMerger()
	if err != nil {
		return nil, err
	}
	if m != nil {
		opts = append(opts, variants.WithMerger(m))
	}

	resolver, err := variants.New(comp.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("component %q (%s): %w", name, comp.Pos, err)
	}
	return resolver, nil
}
