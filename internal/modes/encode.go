// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package modes

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formats lists the output formats supported by Encode.
var Formats = []string{"json", "yaml"}

// Encode writes v to w as indented JSON or as YAML.  YAML output is
// derived from the JSON encoding so that both formats use the same keys.
func Encode(w io.Writer, v interface{}, format string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case "json", "":
		b = append(b, '\n')
	case "yaml":
		var generic interface{}
		if err := yaml.Unmarshal(b, &generic); err != nil {
			return fmt.Errorf("converting to yaml: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	_, err = w.Write(b)
	return err
}
