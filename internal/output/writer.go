package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Davis1233798/ovpn-proxy-go/internal/probe"
)

const (
	timestampLayout = "20060102-150405"

	inventoryPrefix = "all_servers_"
	configPrefix    = "config_file_"
)

// Writer puts the generated files in Dir, named after Now.
type Writer struct {
	Dir string
	Now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

func InventoryName(t time.Time) string {
	return inventoryPrefix + t.Format(timestampLayout) + ".yml"
}

func ConfigName(t time.Time) string {
	return configPrefix + t.Format(timestampLayout) + ".txt"
}

func (w *Writer) path(name string) string {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// WriteInventory stores both sides of the partition as YAML and returns the
// file path. A file of the same name (same second) is overwritten.
func (w *Writer) WriteInventory(p probe.Partition) (string, error) {
	filename := w.path(InventoryName(w.now()))

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(inventoryOf(p)); err != nil {
		return "", fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return filename, nil
}

// ReadInventory loads a file written by WriteInventory.
func ReadInventory(path string) (probe.Partition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p probe.Partition
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return inventoryOf(p), nil
}

// WriteConfig writes one proxy URL per reachable host and returns the path.
// The file holds a plaintext password, so it is created owner-only.
func (w *Writer) WriteConfig(login, password string, p probe.Partition, port int) (string, error) {
	filename := w.path(ConfigName(w.now()))
	content := FormatConfig(login, password, p.Reachable(), port)

	if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
		return "", err
	}
	return filename, nil
}

// inventoryOf guarantees both keys, so empty sides serialize as [].
func inventoryOf(p probe.Partition) probe.Partition {
	out := probe.NewPartition()
	for _, k := range []bool{true, false} {
		if v := p[k]; v != nil {
			out[k] = v
		}
	}
	return out
}
