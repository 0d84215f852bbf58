package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var outputFormat string

// render writes v to the command's stdout in the selected output format.
func render(cmd *cobra.Command, v any) error {
	switch outputFormat {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return eris.Wrap(err, "marshal yaml")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal json")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		return eris.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

// sortNames orders names with locale-aware collation, so accented city and
// area names land where a reader expects them.
func sortNames(names []string) {
	collate.New(language.English).SortStrings(names)
}
