package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"acsforge/acserr"
)

// Load reads and decodes a manifest JSON file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, acserr.IoFailedWrap("reading manifest "+path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, acserr.DecodeFailedWrap("decoding manifest "+path, err)
	}
	return &m, nil
}

// Save encodes the manifest and writes it to path atomically: the
// file is written to a sibling temp file first, then renamed into
// place so readers never observe a partial write.
func Save(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return acserr.EncodeFailedWrap("encoding manifest", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return acserr.IoFailedWrap("writing "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return acserr.IoFailedWrap("renaming "+tmp+" to "+path, err)
	}
	return nil
}

// DefaultPath joins dir with the manifest's fixed filename.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "manifest.json")
}
