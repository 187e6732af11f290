package ports

// ListOptions bounds a list query. A zero Limit means no limit.
type ListOptions struct {
	Offset int
	Limit  int
}
