package landmark

import (
	"fmt"

	"github.com/azybler/corelandmarks/pkg/mmapfile"
)

// Subnetwork id sentinels (spec.md §3). Component ids proper run 1..127.
const (
	SubnetworkUnset   int8 = -1
	SubnetworkUnclear int8 = 0
)

// SubnetworkTable maps each core node to the id of the subnetwork
// (strongly connected component under the build's edge filter) it belongs
// to: one signed byte per core node.
type SubnetworkTable struct {
	file *mmapfile.File
}

// CreateSubnetworkTable creates a new table for coreNodeCount core nodes,
// every entry initialised to SubnetworkUnset.
func CreateSubnetworkTable(path string, coreNodeCount uint32) (*SubnetworkTable, error) {
	f, err := mmapfile.Create(path, int64(coreNodeCount))
	if err != nil {
		return nil, fmt.Errorf("landmark: create subnetwork table: %w", err)
	}
	st := &SubnetworkTable{file: f}
	data := f.Bytes()
	for i := range data[:coreNodeCount] {
		data[i] = byte(SubnetworkUnset)
	}
	return st, nil
}

// LoadSubnetworkTable opens an existing table. Returns ErrGraphMismatch if
// its size disagrees with coreNodeCount.
func LoadSubnetworkTable(path string, coreNodeCount uint32) (*SubnetworkTable, error) {
	f, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("landmark: load subnetwork table: %w", err)
	}
	if f.Len() != int64(coreNodeCount) {
		f.Close()
		return nil, ErrGraphMismatch
	}
	return &SubnetworkTable{file: f}, nil
}

// CoreNodeCount returns the number of core nodes this table covers.
func (st *SubnetworkTable) CoreNodeCount() uint32 { return uint32(st.file.Len()) }

// Get returns the subnetwork id of core index coreIdx.
func (st *SubnetworkTable) Get(coreIdx uint32) int8 {
	return int8(st.file.Bytes()[coreIdx])
}

// Set assigns the subnetwork id of core index coreIdx.
func (st *SubnetworkTable) Set(coreIdx uint32, id int8) {
	st.file.Bytes()[coreIdx] = byte(id)
}

// Flush persists the table to disk. Idempotent.
func (st *SubnetworkTable) Flush() error { return st.file.Flush() }

// Close releases the table's resources. Idempotent.
func (st *SubnetworkTable) Close() error { return st.file.Close() }
