package sourcemap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"graft/internal/source"
)

// Current schema version - increment when FilePayload format changes
const fileSchemaVersion uint16 = 1

// FilePayload is the on-disk form of an assembled source map.
type FilePayload struct {
	Schema uint16

	Root      string   // корневой ресурс
	MergedLen uint32   // длина склеенного вывода
	Resources []string // участвовавшие ресурсы

	Segments []FileSegment
}

// FileSegment mirrors MappedSegment with a string origin for serialization.
type FileSegment struct {
	GeneratedStart uint32
	Origin         string
	OriginalStart  uint32
	Length         uint32
}

// Payload converts an assembled map into its serializable form.
func Payload(m Map, root source.ResourceID, mergedLen uint32) *FilePayload {
	p := &FilePayload{
		Schema:    fileSchemaVersion,
		Root:      string(root),
		MergedLen: mergedLen,
	}
	seen := make(map[string]struct{})
	for _, seg := range m.Segments {
		origin := string(seg.Origin)
		if _, ok := seen[origin]; !ok {
			seen[origin] = struct{}{}
			p.Resources = append(p.Resources, origin)
		}
		p.Segments = append(p.Segments, FileSegment{
			GeneratedStart: seg.GeneratedStart,
			Origin:         origin,
			OriginalStart:  seg.OriginalStart,
			Length:         seg.Length,
		})
	}
	return p
}

// ToMap restores the assembled map from a payload.
func (p *FilePayload) ToMap() Map {
	m := Map{Segments: make([]MappedSegment, 0, len(p.Segments))}
	for _, seg := range p.Segments {
		m.Segments = append(m.Segments, MappedSegment{
			GeneratedStart: seg.GeneratedStart,
			Origin:         source.ResourceID(seg.Origin),
			OriginalStart:  seg.OriginalStart,
			Length:         seg.Length,
		})
	}
	return m
}

// WriteFile serializes the payload to path atomically (temp file + rename).
func WriteFile(path string, payload *FilePayload) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// ReadFile deserializes a payload from path, rejecting unknown schemas.
func ReadFile(path string) (*FilePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload FilePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Schema != fileSchemaVersion {
		return nil, fmt.Errorf("unsupported source map schema %d", payload.Schema)
	}
	return &payload, nil
}
