package sink

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/gruptree/pkg/gruptree"
)

// Cache file framing: magic, CRC32 of the compressed payload, payload
// length, snappy-compressed JSON payload. JSON keeps the set/unset
// distinction of pointer attribute fields; an attribute explicitly set
// to zero must survive the round trip as zero, not as absent.
var cacheMagic = []byte("GTC1")

var (
	ErrCacheCorrupt = errors.New("cache file corrupt")
)

// cacheEntry is the serialized form of one cached extraction.
type cacheEntry struct {
	SourceModTime time.Time
	Table         gruptree.Table
}

// SaveCache writes the table to a cache file, stamped with the source
// deck's modification time.
func SaveCache(path string, sourceModTime time.Time, t *gruptree.Table) error {
	entry := cacheEntry{SourceModTime: sourceModTime, Table: *t}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	compressed := snappy.Encode(nil, payload)

	var out bytes.Buffer
	out.Write(cacheMagic)
	binary.Write(&out, binary.LittleEndian, crc32.ChecksumIEEE(compressed))
	binary.Write(&out, binary.LittleEndian, uint32(len(compressed)))
	out.Write(compressed)

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	return nil
}

// LoadCache reads a cached table if the file exists, is intact, and was
// produced from a deck with the given modification time. A stale or
// missing cache returns ok=false with no error; only a present but
// corrupt file is an error.
func LoadCache(path string, sourceModTime time.Time) (*gruptree.Table, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache %s: %w", path, err)
	}

	if len(data) < len(cacheMagic)+8 || !bytes.Equal(data[:len(cacheMagic)], cacheMagic) {
		return nil, false, fmt.Errorf("%w: bad header", ErrCacheCorrupt)
	}
	rest := data[len(cacheMagic):]
	sum := binary.LittleEndian.Uint32(rest[0:4])
	length := binary.LittleEndian.Uint32(rest[4:8])
	if int(length) != len(rest)-8 {
		return nil, false, fmt.Errorf("%w: truncated payload", ErrCacheCorrupt)
	}
	compressed := rest[8:]
	if crc32.ChecksumIEEE(compressed) != sum {
		return nil, false, fmt.Errorf("%w: checksum mismatch", ErrCacheCorrupt)
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	var entry cacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}

	if !entry.SourceModTime.Equal(sourceModTime) {
		return nil, false, nil
	}
	return &entry.Table, true, nil
}
