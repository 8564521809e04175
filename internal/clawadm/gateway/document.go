// Package gateway assembles and persists the OpenClaw gateway's JSON
// configuration document.
package gateway

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/openclaw/clawadm/pkg/logger"
)

// Document is the gateway configuration as a free-form JSON object. The
// gateway owns the schema; clawadm only guarantees the shape of the blocks
// it writes, so the document stays an open mapping rather than a struct.
type Document map[string]any

// LoadDocument reads the configuration at path. A missing file yields an
// empty document; anything else that goes wrong (unreadable file, invalid
// JSON) is an error for the caller to degrade on.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, err
	}
	var d Document
	if err := sonic.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// Save backs up any existing file at path to a ".bak" sibling, then writes
// the document as 2-space-indented JSON. Exactly one prior generation is
// kept. Non-ASCII text is written as-is.
func (d Document) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
		logger.Infof("Backup created: %s", path+".bak")
	}

	data, err := sonic.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DeepMerge combines update into base: nested maps merge key by key, every
// other value type (slices included) is replaced wholesale by update's
// value. Neither input is mutated.
func DeepMerge(base, update map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(update))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range update {
		if existing, ok := result[k].(map[string]any); ok {
			if updating, ok := v.(map[string]any); ok {
				result[k] = DeepMerge(existing, updating)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// ensure walks the nested maps named by keys, creating levels as needed,
// and returns the innermost one. A non-map value in the way is replaced.
func (d Document) ensure(keys ...string) map[string]any {
	current := map[string]any(d)
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	return current
}

// toMap round-trips a typed block through JSON so it can participate in
// map-level merging.
func toMap(v any) map[string]any {
	data, err := sonic.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := sonic.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}
