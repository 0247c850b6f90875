package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newServicesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the available services and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container()
			if err != nil {
				return err
			}
			defer c.Close()

			if asJSON {
				return writeServicesJSON(cmd.OutOrStdout(), c.Registry.Services())
			}
			writeServicesText(cmd.OutOrStdout(), c.Registry.Services())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print services as JSON")
	return cmd
}

type serviceJSON struct {
	entity.Descriptor
	Fields []entity.FieldSpec `json:"fields"`
}

func writeServicesJSON(w io.Writer, services []output.ServicePort) error {
	out := make([]serviceJSON, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceJSON{Descriptor: svc.Descriptor(), Fields: svc.Fields()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeServicesText(w io.Writer, services []output.ServicePort) {
	if len(services) == 0 {
		fmt.Fprintln(w, "No services are configured.")
		return
	}
	for i, svc := range services {
		if i > 0 {
			fmt.Fprintln(w)
		}
		d := svc.Descriptor()
		fmt.Fprintf(w, "%s  [%s]\n", d.Title(), d.ID)
		if d.Description != "" {
			fmt.Fprintf(w, "  %s\n", d.Description)
		}
		for _, f := range svc.Fields() {
			fmt.Fprintf(w, "  --%s %-12s %s\n", flagFor(f), f.Name, fieldSummary(f))
		}
	}
}

func flagFor(f entity.FieldSpec) string {
	if f.Kind == entity.FieldFile {
		return "file"
	}
	return "set "
}

func fieldSummary(f entity.FieldSpec) string {
	parts := []string{string(f.Kind)}
	if f.Required {
		parts = append(parts, "required")
	}
	if f.Min != nil && f.Max != nil {
		parts = append(parts, fmt.Sprintf("%d..%d", *f.Min, *f.Max))
	}
	if len(f.Options) > 0 {
		parts = append(parts, strings.Join(f.Options, "|"))
	}
	if f.Default != "" {
		parts = append(parts, "default "+f.Default)
	}
	return strings.Join(parts, ", ")
}
