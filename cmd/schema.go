package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/featurelayer-cli/internal/schema"
)

var schemaYAML bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the canonical fields and the synonym table in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		syn := schema.DefaultSynonyms()
		if cfg.SynonymsFile != "" {
			var err error
			if syn, err = schema.LoadSynonyms(cfg.SynonymsFile); err != nil {
				return err
			}
		}
		if err := syn.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if schemaYAML {
			doc := yaml.Node{Kind: yaml.MappingNode}
			fields := yaml.Node{Kind: yaml.MappingNode}
			for _, f := range schema.Fields {
				names, ok := syn[f]
				if !ok {
					continue
				}
				seq := yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
				for _, n := range names {
					seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: n})
				}
				fields.Content = append(fields.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f}, &seq)
			}
			doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "synonyms"}, &fields)

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(&doc); err != nil {
				return eris.Wrap(err, "encode synonyms")
			}
			return eris.Wrap(enc.Close(), "encode synonyms")
		}

		for _, f := range schema.Fields {
			fmt.Fprintf(out, "%-12s %s\n", f, strings.Join(syn[f], ", "))
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaYAML, "yaml", false, "print the synonym table as a synonyms_file document")
	rootCmd.AddCommand(schemaCmd)
}
