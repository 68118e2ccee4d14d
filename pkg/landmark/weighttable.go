package landmark

import (
	"encoding/binary"
	"fmt"

	"github.com/azybler/corelandmarks/pkg/mmapfile"
)

// headerSize is the 16-byte reserved header: coreNodeCount, K, S,
// round(factor*1e6), each a little-endian int32. Its placement at offset 0
// (rather than trailing the data) is this implementation's choice of the
// "implementation-defined offset" spec.md §6 leaves open.
const headerSize = 16

// WeightTable is the byte-addressed (from,to) landmark weight matrix: a
// row per core node, K landmarks per row, two shorts per landmark. Backed
// by a mmapfile.File exactly as spec.md §4.2 specifies.
type WeightTable struct {
	file  *mmapfile.File
	codec *Codec

	coreNodeCount uint32
	k             uint32
	s             uint32

	// landmarkIDs[s] is the K graph-node ids of subnetwork s's landmarks.
	// Index 0 is always the UNSET placeholder so subnetwork ids align with
	// list positions (spec.md §3).
	landmarkIDs [][]uint32
}

func weightRegionBytes(coreNodeCount, k uint32) int64 {
	return int64(coreNodeCount) * int64(k) * 4
}

func mappingRegionBytes(s, k uint32) int64 {
	return int64(s) * int64(k) * 4
}

// CreateWeightTable creates a new weight table file sized for coreNodeCount
// core nodes and k landmarks per subnetwork, with every weight initialised
// to ShortInfinity ("not yet reached").
func CreateWeightTable(path string, coreNodeCount, k uint32, factor float64) (*WeightTable, error) {
	codec, err := NewCodec(factor)
	if err != nil {
		return nil, err
	}

	// The mapping region always reserves at least slot 0 (the UNSET
	// placeholder) so a table flushed before any AddSubnetwork call still
	// has a mapping region to read back on load.
	size := headerSize + weightRegionBytes(coreNodeCount, k) + mappingRegionBytes(1, k)
	f, err := mmapfile.Create(path, size)
	if err != nil {
		return nil, fmt.Errorf("landmark: create weight table: %w", err)
	}

	wt := &WeightTable{
		file:          f,
		codec:         codec,
		coreNodeCount: coreNodeCount,
		k:             k,
		s:             1, // slot 0 is always the UNSET placeholder
		landmarkIDs:   [][]uint32{make([]uint32, k)},
	}
	wt.fillUnset()
	wt.writeHeader()
	return wt, nil
}

// LoadWeightTable opens an existing weight table file and reconstructs its
// header fields and landmark-id mapping region.
func LoadWeightTable(path string) (*WeightTable, error) {
	f, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("landmark: load weight table: %w", err)
	}

	wt := &WeightTable{file: f}
	wt.readHeader()

	codec, err := NewCodec(float64(wt.factorMicros()) / 1e6)
	if err != nil {
		f.Close()
		return nil, err
	}
	wt.codec = codec

	wt.landmarkIDs = make([][]uint32, wt.s)
	for s := uint32(0); s < wt.s; s++ {
		row := make([]uint32, wt.k)
		for i := uint32(0); i < wt.k; i++ {
			row[i] = uint32(wt.getInt(wt.mappingOffset(s, i)))
		}
		wt.landmarkIDs[s] = row
	}
	return wt, nil
}

func (wt *WeightTable) fillUnset() {
	data := wt.file.Bytes()
	end := headerSize + weightRegionBytes(wt.coreNodeCount, wt.k)
	for off := int64(headerSize); off+2 <= end; off += 2 {
		binary.LittleEndian.PutUint16(data[off:off+2], ShortInfinity)
	}
}

func (wt *WeightTable) writeHeader() {
	wt.setInt(0, int32(wt.coreNodeCount))
	wt.setInt(4, int32(wt.k))
	wt.setInt(8, int32(wt.s))
	wt.setInt(12, wt.codec.FactorMicros())
}

func (wt *WeightTable) readHeader() {
	wt.coreNodeCount = uint32(wt.getInt(0))
	wt.k = uint32(wt.getInt(4))
	wt.s = uint32(wt.getInt(8))
}

func (wt *WeightTable) factorMicros() int32 { return wt.getInt(12) }

func (wt *WeightTable) getInt(offset int64) int32 {
	return int32(binary.LittleEndian.Uint32(wt.file.Bytes()[offset : offset+4]))
}

func (wt *WeightTable) setInt(offset int64, v int32) {
	binary.LittleEndian.PutUint32(wt.file.Bytes()[offset:offset+4], uint32(v))
}

func (wt *WeightTable) getShort(offset int64) uint16 {
	return binary.LittleEndian.Uint16(wt.file.Bytes()[offset : offset+2])
}

func (wt *WeightTable) setShort(offset int64, v uint16) {
	binary.LittleEndian.PutUint16(wt.file.Bytes()[offset:offset+2], v)
}

// CoreNodeCount returns C, the number of core nodes this table was sized for.
func (wt *WeightTable) CoreNodeCount() uint32 { return wt.coreNodeCount }

// K returns the number of landmarks per subnetwork.
func (wt *WeightTable) K() uint32 { return wt.k }

// NumSubnetworks returns S, including the index-0 placeholder.
func (wt *WeightTable) NumSubnetworks() uint32 { return wt.s }

// Codec returns the table's weight codec.
func (wt *WeightTable) Codec() *Codec { return wt.codec }

func (wt *WeightTable) weightOffset(coreIdx, landmarkIdx uint32) int64 {
	return headerSize + int64(coreIdx)*int64(wt.k)*4 + int64(landmarkIdx)*4
}

func (wt *WeightTable) mappingOffset(s, landmarkIdx uint32) int64 {
	return headerSize + weightRegionBytes(wt.coreNodeCount, wt.k) + int64(s)*int64(wt.k)*4 + int64(landmarkIdx)*4
}

// FromWeight returns the raw stored (ell -> v) short for core index coreIdx
// and landmark index landmarkIdx.
func (wt *WeightTable) FromWeight(coreIdx, landmarkIdx uint32) uint16 {
	return wt.getShort(wt.weightOffset(coreIdx, landmarkIdx))
}

// SetFromWeight writes the (ell -> v) short.
func (wt *WeightTable) SetFromWeight(coreIdx, landmarkIdx uint32, v uint16) {
	wt.setShort(wt.weightOffset(coreIdx, landmarkIdx), v)
}

// ToWeight returns the raw stored (v -> ell) short.
func (wt *WeightTable) ToWeight(coreIdx, landmarkIdx uint32) uint16 {
	return wt.getShort(wt.weightOffset(coreIdx, landmarkIdx) + 2)
}

// SetToWeight writes the (v -> ell) short.
func (wt *WeightTable) SetToWeight(coreIdx, landmarkIdx uint32, v uint16) {
	wt.setShort(wt.weightOffset(coreIdx, landmarkIdx)+2, v)
}

// AddSubnetwork appends a new subnetwork slot with the given landmark graph
// node ids, growing the mapping region as needed, and returns its id.
// Returns ErrTooManySubnetworks if the new id would exceed 127 (the
// subnetwork table's signed-byte range).
func (wt *WeightTable) AddSubnetwork(landmarkGraphIDs []uint32) (uint32, error) {
	id := wt.s
	if id > 127 {
		return 0, ErrTooManySubnetworks
	}

	newS := wt.s + 1
	if err := wt.file.EnsureCapacity(headerSize + weightRegionBytes(wt.coreNodeCount, wt.k) + mappingRegionBytes(newS, wt.k)); err != nil {
		return 0, fmt.Errorf("landmark: grow weight table mapping region: %w", err)
	}
	wt.s = newS

	row := make([]uint32, wt.k)
	copy(row, landmarkGraphIDs)
	wt.landmarkIDs = append(wt.landmarkIDs, row)
	for i, v := range row {
		wt.setInt(wt.mappingOffset(id, uint32(i)), int32(v))
	}
	wt.writeHeader()
	return id, nil
}

// LandmarkIDs returns the K graph node ids for subnetwork s.
func (wt *WeightTable) LandmarkIDs(s uint32) []uint32 {
	return wt.landmarkIDs[s]
}

// Flush persists all writes to disk. Idempotent.
func (wt *WeightTable) Flush() error { return wt.file.Flush() }

// Close releases the table's resources. Idempotent.
func (wt *WeightTable) Close() error { return wt.file.Close() }
