// Package display renders command results for the terminal, either as
// colored summaries or as JSON.
package display

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

// ShouldOutputJSON reports whether cmd should print JSON. A local --json
// flag wins over the global one.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}
	return false
}

// OutputJSON writes v to w as JSON followed by a newline.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
