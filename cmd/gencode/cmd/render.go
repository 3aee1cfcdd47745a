package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/genco-go/genco"
	"github.com/genco-go/genco/quote"
)

var (
	renderCmd = &cobra.Command{
		Use:   "render template...",
		Short: "Compile templates, run them against the bindings, and dump the output to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New("need at least one <template> argument")
			}
			b, err := backendByName(langName)
			if err != nil {
				return err
			}
			bindings, err := loadBindings(bindingsFile)
			if err != nil {
				return err
			}

			runID := uuid.Must(uuid.NewV4()).String()
			for _, path := range args {
				log := logrus.WithFields(logrus.Fields{"run_id": runID, "file": path})
				text, err := renderFile(b, path, bindings)
				if err != nil {
					log.WithError(err).Error("render failed")
					return err
				}
				log.Debug("rendered template")
				fmt.Println(text)
			}
			return nil
		},
	}
)

func renderFile(b backend, path string, bindings map[string]any) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	plan, err := quote.Parse(path, string(src))
	if err != nil {
		return "", err
	}
	env := quote.Values(bindings)
	for name, fn := range b.helpers {
		env.Set(name, reflect.ValueOf(fn))
	}
	s := genco.NewStream()
	if err := plan.Execute(s, env); err != nil {
		return "", err
	}
	return s.String(b.lang, level)
}

func loadBindings(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing bindings file %s: %w", path, err)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
