package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/svnrelease/cmd/svnrelease"
	"github.com/arthur-debert/svnrelease/internal/version"
)

func main() {
	rootCmd := svnrelease.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SVNRELEASE",
		Section: "1",
		Source:  "svnrelease " + version.Version,
		Manual:  "svnrelease manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
