package social

// NameItem is a display name reachable over a follow edge. Duplicate edges
// produce duplicate entries; the surface never deduplicated them.
type NameItem struct {
	Name string `json:"name"`
}
