package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/genco-go/genco/quote"
)

var (
	dumpFormat string

	planCmd = &cobra.Command{
		Use:   "plan template",
		Short: "Compile a template and dump its instruction plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <template>")
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := quote.Parse(args[0], string(src))
			if err != nil {
				return err
			}
			dump := dumpPlan(plan)
			switch dumpFormat {
			case "repr":
				fmt.Println(repr.String(dump, repr.Indent("  ")))
			case "yaml":
				out, err := yaml.Marshal(dump)
				if err != nil {
					return err
				}
				fmt.Print(string(out))
			default:
				return fmt.Errorf("unknown dump format %q, expected repr or yaml", dumpFormat)
			}
			return nil
		},
	}
)

// instrDump is the serializable projection of one plan instruction:
// expressions and patterns are reduced to their source text.
type instrDump struct {
	Kind    string      `yaml:"kind"`
	Literal string      `yaml:"literal,omitempty"`
	Expr    string      `yaml:"expr,omitempty"`
	Pattern string      `yaml:"pattern,omitempty"`
	Binding string      `yaml:"binding,omitempty"`
	Body    []instrDump `yaml:"body,omitempty"`
	Join    []instrDump `yaml:"join,omitempty"`
	Else    []instrDump `yaml:"else,omitempty"`
	Arms    []armDump   `yaml:"arms,omitempty"`
}

type armDump struct {
	Pattern string      `yaml:"pattern"`
	Body    []instrDump `yaml:"body"`
}

func dumpPlan(p *quote.Plan) []instrDump {
	if p == nil {
		return nil
	}
	out := make([]instrDump, 0, len(p.Instrs))
	for _, in := range p.Instrs {
		d := instrDump{
			Kind:    in.Kind.String(),
			Literal: in.Literal,
			Binding: in.Binding,
		}
		if in.Expr != nil {
			d.Expr = in.Expr.Source()
		}
		if in.Pattern != nil {
			d.Pattern = in.Pattern.Source()
		}
		d.Body = dumpPlan(in.Body)
		d.Join = dumpPlan(in.Join)
		d.Else = dumpPlan(in.Else)
		for _, arm := range in.Arms {
			d.Arms = append(d.Arms, armDump{Pattern: arm.Pattern.Source(), Body: dumpPlan(arm.Body)})
		}
		out = append(out, d)
	}
	return out
}

func init() {
	planCmd.Flags().StringVar(&dumpFormat, "format", "repr", "dump format: repr or yaml")
	rootCmd.AddCommand(planCmd)
}
