package worldgen

// BlockPos is a block coordinate in a world.
type BlockPos struct {
	X, Y, Z int32
}

// ChunkCoords returns the horizontal chunk (16x16 column) containing p.
func (p BlockPos) ChunkCoords() (cx, cz int32) {
	return p.X >> 4, p.Z >> 4
}

// ChunkKey packs the chunk column of p into one 64-bit key: chunk x in the
// low 32 bits, chunk z in the high 32 bits. Distinct chunk columns always
// produce distinct keys.
func ChunkKey(p BlockPos) int64 {
	cx, cz := p.ChunkCoords()
	return PackChunk(cx, cz)
}

// PackChunk packs chunk coordinates the way ChunkKey does.
func PackChunk(cx, cz int32) int64 {
	return int64(uint64(uint32(cx)) | uint64(uint32(cz))<<32)
}

// UnpackChunk reverses PackChunk.
func UnpackChunk(key int64) (cx, cz int32) {
	return int32(uint32(key)), int32(uint32(uint64(key) >> 32))
}

// SectionIndex returns the vertical 16-block section containing p.
func SectionIndex(p BlockPos) int32 {
	return p.Y >> 4
}
