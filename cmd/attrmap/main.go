/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command attrmap reports the attribute → column mapping of every collection
// declared in a YAML declarations file, and fails on declarations the
// collection bootstrap would reject (non-textual column names, unknown
// types, colliding column mappings).
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/suparena/collectionstore"
	"github.com/suparena/collectionstore/schema"
	"github.com/suparena/collectionstore/transform"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := collectionstore.GetVersionInfo()
		fmt.Printf("collectionstore attrmap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <declarations.yaml>\n", os.Args[0])
		os.Exit(2)
	}

	declsByCollection, err := schema.LoadDeclarationsFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	identities := make([]string, 0, len(declsByCollection))
	for identity := range declsByCollection {
		identities = append(identities, identity)
	}
	sort.Strings(identities)

	exitCode := 0
	for _, identity := range identities {
		t, err := transform.Build(declsByCollection[identity])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", identity, err)
			exitCode = 1
			continue
		}

		fmt.Printf("%s:\n", identity)
		mapping := t.Map()
		if len(mapping) == 0 {
			fmt.Println("  (all attributes map to themselves)")
			continue
		}

		attrs := make([]string, 0, len(mapping))
		for attr := range mapping {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)
		for _, attr := range attrs {
			fmt.Printf("  %s -> %s\n", attr, mapping[attr])
		}
	}
	os.Exit(exitCode)
}
