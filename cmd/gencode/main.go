package main

import (
	"os"

	"github.com/genco-go/genco/cmd/gencode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
