package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genco-go/genco"
	"github.com/genco-go/genco/lang/golang"
	"github.com/genco-go/genco/lang/js"
)

// backend couples a genco.Lang with the helper functions templates may
// call to produce language items, e.g. #(imported("strings", "Join")).
type backend struct {
	lang    genco.Lang
	helpers map[string]any
}

var backends = map[string]backend{
	"go": {
		lang: golang.New(),
		helpers: map[string]any{
			"imported": golang.Imported,
			"local":    golang.Local,
		},
	},
	"js": {
		lang: js.New(),
		helpers: map[string]any{
			"imported": js.Imported,
			"local":    js.Local,
			"quoted":   js.Quoted,
		},
	},
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func backendByName(name string) (backend, error) {
	b, ok := backends[name]
	if !ok {
		return backend{}, fmt.Errorf("unknown backend %q, expected one of: %s", name, strings.Join(backendNames(), ", "))
	}
	return b, nil
}

var listBackendsCmd = &cobra.Command{
	Use:   "list-backends",
	Short: "List the available target language backends",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range backendNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listBackendsCmd)
}
