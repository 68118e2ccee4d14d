// Package eccentricity stores, per node, an upper-bound isochrone radius and
// a "fully reachable" flag, keyed by weighting — the companion table
// spec.md §4.10 describes alongside the landmark weight table.
package eccentricity

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"regexp"

	"github.com/azybler/corelandmarks/pkg/mmapfile"
)

// recordSize is the fixed 8 bytes per node: fullyReachable (int32) at offset
// 0, ceil(eccentricity) (int32) at offset 4.
const recordSize = 8

// Store is the fixed-width, mmap-backed eccentricity table.
type Store struct {
	file      *mmapfile.File
	nodeCount uint32
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// FileName derives the store's file name from a weighting name, sanitised
// for use on any filesystem.
func FileName(weightingName string) string {
	return "eccentricities_" + unsafeNameChars.ReplaceAllString(weightingName, "_")
}

// Create creates a new store in dir for nodeCount nodes, every record zeroed
// (fullyReachable=0, eccentricity=0).
func Create(dir, weightingName string, nodeCount uint32) (*Store, error) {
	path := filepath.Join(dir, FileName(weightingName))
	f, err := mmapfile.Create(path, int64(nodeCount)*recordSize)
	if err != nil {
		return nil, fmt.Errorf("eccentricity: create: %w", err)
	}
	return &Store{file: f, nodeCount: nodeCount}, nil
}

// Load opens an existing store. The caller-supplied nodeCount is validated
// against the file's size.
func Load(dir, weightingName string, nodeCount uint32) (*Store, error) {
	path := filepath.Join(dir, FileName(weightingName))
	f, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eccentricity: load: %w", err)
	}
	if f.Len() != int64(nodeCount)*recordSize {
		f.Close()
		return nil, fmt.Errorf("eccentricity: load: node count mismatch: file holds %d records, want %d", f.Len()/recordSize, nodeCount)
	}
	return &Store{file: f, nodeCount: nodeCount}, nil
}

// NodeCount returns the number of node records this store holds.
func (s *Store) NodeCount() uint32 { return s.nodeCount }

func (s *Store) offset(node uint32) int64 { return int64(node) * recordSize }

func (s *Store) getInt32(off int64) int32 {
	return int32(binary.LittleEndian.Uint32(s.file.Bytes()[off : off+4]))
}

func (s *Store) setInt32(off int64, v int32) {
	binary.LittleEndian.PutUint32(s.file.Bytes()[off:off+4], uint32(v))
}

// GetEccentricity returns the stored eccentricity (already rounded up to an
// integer at SetEccentricity time) for node.
func (s *Store) GetEccentricity(node uint32) int32 {
	return s.getInt32(s.offset(node) + 4)
}

// SetEccentricity stores ceil(v) for node.
func (s *Store) SetEccentricity(node uint32, v float64) {
	s.setInt32(s.offset(node)+4, int32(math.Ceil(v)))
}

// GetFullyReachable reports whether node's component reaches every other
// node under the build's filter.
func (s *Store) GetFullyReachable(node uint32) bool {
	return s.getInt32(s.offset(node)) != 0
}

// SetFullyReachable sets node's fully-reachable flag.
func (s *Store) SetFullyReachable(node uint32, v bool) {
	flag := int32(0)
	if v {
		flag = 1
	}
	s.setInt32(s.offset(node), flag)
}

// Flush persists the store to disk. Idempotent.
func (s *Store) Flush() error { return s.file.Flush() }

// Close releases the store's resources. Idempotent.
func (s *Store) Close() error { return s.file.Close() }
