package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printMessages(w io.Writer, messages []string) error {
	_, err := fmt.Fprintln(w, strings.Join(messages, "\n\n"))
	return err
}
