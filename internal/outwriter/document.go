package outwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// EncodeDocument serializes the document as two-space indented JSON.
// Non-ASCII text and markup characters are kept as-is.
func EncodeDocument(doc schema.Document) ([]byte, error) {
	if doc.Logs == nil {
		doc.Logs = []schema.Record{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDocument writes the document to path, creating parent directories as needed.
func WriteDocument(fs afero.Fs, path string, doc schema.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
