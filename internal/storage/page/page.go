package page

// Number identifies a page within a page file, zero-based. Negative values
// are never valid page numbers; NoPage marks a frame that holds nothing.
type Number int64

// NoPage is the sentinel for an empty frame.
const NoPage Number = -1

// Size is the fixed page size in bytes. Every block in a page file is
// exactly this long.
const Size = 4096

// Offset returns the byte offset of page n within its file.
func Offset(n Number) int64 {
	return int64(n) * Size
}
