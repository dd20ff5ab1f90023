package emit

import (
	"bytes"
	"encoding/json"
)

// marshalNoEscapeIndent renders v as indented JSON without HTML escaping,
// so header values and bodies keep <, > and & readable in the generated
// source. prefix and indent follow json.Encoder.SetIndent semantics.
func marshalNoEscapeIndent(v interface{}, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode appends a trailing newline that the caller does not want.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
