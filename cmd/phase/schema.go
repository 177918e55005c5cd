package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Phase-Platform/phase/internal/integrity"
	"github.com/Phase-Platform/phase/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [entity]",
		Short: "Describe the entity schema",
		Long: `Without arguments, lists every entity in creation order with the entities
it references. With an entity name, lists its fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runSchemaEntity(cmd, args[0])
			}
			return runSchema(cmd)
		},
	}
}

func runSchema(cmd *cobra.Command) error {
	g := integrity.Default()
	order, err := g.Order()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tENTITY\tTABLE\tREFERENCES")
	for i, name := range order {
		e, _ := schema.Lookup(name)
		var refs []string
		for _, edge := range g.Parents(name) {
			ref := edge.Field + "->" + edge.To
			if !edge.Required {
				ref += "?"
			}
			refs = append(refs, ref)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, name, e.Table, strings.Join(refs, " "))
	}
	return w.Flush()
}

func runSchemaEntity(cmd *cobra.Command, name string) error {
	e, ok := schema.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown entity %q (see phase schema)", name)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (table %s, id prefix %s_)\n\n", e.Name, e.Table, e.Prefix)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tKIND\tREQUIRED\tDETAIL")
	for _, f := range e.Fields {
		var detail []string
		switch {
		case f.Ref != "":
			detail = append(detail, "-> "+f.Ref)
		case f.Enum != nil:
			detail = append(detail, f.Enum.Name+"("+strings.Join(f.Enum.Values, "|")+")")
		}
		if f.Format != "" {
			detail = append(detail, "format="+f.Format)
		}
		if f.Default != nil {
			detail = append(detail, fmt.Sprintf("default=%v", f.Default))
		}
		if f.Immutable {
			detail = append(detail, "immutable")
		}
		req := ""
		if f.Required {
			req = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Kind, req, strings.Join(detail, " "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, u := range e.Unique {
		fmt.Fprintf(out, "unique: %s\n", strings.Join(u, ", "))
	}
	if e.Poly != nil {
		fmt.Fprintf(out, "polymorphic target: %s + %s\n", e.Poly.TypeField, e.Poly.IDField)
	}
	return nil
}
