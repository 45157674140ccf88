package display

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether a command's output should be JSON.
// A --json flag set on the command itself wins over the global
// persistent flag. A nil command (result rendering without command
// context) gets human output.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputJSON marshals v through MarshalJSON and prints it to stdout
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Println(string(data))
	return err
}
