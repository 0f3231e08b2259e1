package badger

// Key prefixes for different data types
const (
	chunkPrefix = "evchunk"
)

// makeChunkKey generates a key for an evidence chunk by content ID.
func makeChunkKey(id string) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+len(id))
	offset := copy(buf, prefix)
	copy(buf[offset:], id)
	return buf
}
