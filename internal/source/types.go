package source

// ResourceID uniquely identifies a resource within a merge invocation.
// It is minted by the resolver/store layer (normally a canonical URL) and is
// treated as fully opaque everywhere else: the merge engine only compares and
// hashes it, never inspects it.
type ResourceID string

// ResourceFlags encodes metadata about a resource.
type ResourceFlags uint8

const (
	// ResourceVirtual indicates the resource was added from memory (test, stdin, etc.).
	ResourceVirtual ResourceFlags = 1 << iota
	ResourceHadBOM
	ResourceNormalizedCRLF
)

// Resource captures metadata and content for a single loaded document.
type Resource struct {
	ID      ResourceID
	URL     string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   ResourceFlags
}

// LineCol represents a human-readable position in a resource.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
