/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDeclarations reads a YAML document mapping collection identities to
// their attribute declarations:
//
//	user:
//	  fullName:
//	    type: string
//	    columnName: full_name
//	  age: number
//
// Shorthand string values declare a bare type; mapping values follow the
// Attribute declaration keys (type, columnName, required, belongsTo,
// hasMany, via, defaultsTo).
func LoadDeclarations(r io.Reader) (map[string]Declarations, error) {
	var raw map[string]map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode declarations: %w", err)
	}

	out := make(map[string]Declarations, len(raw))
	for identity, decls := range raw {
		d := make(Declarations, len(decls))
		for name, v := range decls {
			d[name] = v
		}
		out[identity] = d
	}
	return out, nil
}

// LoadDeclarationsFile reads declarations from a YAML file on disk.
func LoadDeclarationsFile(path string) (map[string]Declarations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open declarations file: %w", err)
	}
	defer f.Close()
	return LoadDeclarations(f)
}
