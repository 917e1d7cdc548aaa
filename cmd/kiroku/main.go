package main

import (
	"fmt"
	"os"

	"github.com/ayutaki/kiroku/internal/cli"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := cli.New()
	root.Version = versionString()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionString() string {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return fmt.Sprintf("%s (built %s, commit %s)", buildVersion, buildDate, buildCommit)
}
