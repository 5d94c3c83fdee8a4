package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/de-tools/analytix/pkg/adapters"
	"github.com/de-tools/analytix/pkg/models/api"
	"github.com/de-tools/analytix/pkg/runtime/terminal/export"
	"github.com/de-tools/analytix/pkg/services/reporttype"
)

type TypesCmd struct {
	format   string
	catalog  *reporttype.Catalog
	reporter *export.Reporter
}

func NewTypesCmd(catalog *reporttype.Catalog, reporter *export.Reporter) *cobra.Command {
	tc := &TypesCmd{catalog: catalog, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the supported report types",
		Args:  cobra.NoArgs,
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.format, "format", "table", "Output format: table, json or yaml")

	return cmd
}

func (tc *TypesCmd) run(cmd *cobra.Command, _ []string) error {
	types := tc.catalog.Types()

	switch tc.format {
	case "table":
		return tc.reporter.HandleTypes(types)
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q. Supported formats: table, json, yaml", tc.format)
	}

	response := make([]api.ReportType, 0, len(types))
	for _, rt := range types {
		response = append(response, adapters.MapReportTypeDomainToApi(rt))
	}

	out := cmd.OutOrStdout()
	if tc.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(response); err != nil {
		return err
	}
	return enc.Close()
}
