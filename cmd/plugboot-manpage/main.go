package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/plugboot/cmd/plugboot"
	"github.com/arthur-debert/plugboot/internal/version"
)

func main() {
	rootCmd := plugboot.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PLUGBOOT",
		Section: "1",
		Source:  "plugboot " + version.Version,
		Manual:  "plugboot manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
