package fieldproj

// QueryOption configures a Query at construction time.
type QueryOption func(*Query)

// WithMaxDepth raises how many nesting levels the leveled-colon builder
// tracks to at least d. The default is the deepest path any requested
// field actually needs; a d at or below that default has no effect, so
// WithMaxDepth is only needed to track depths beyond what any
// path requests (e.g. to detect ill-formed input deeper than the query
// cares about).
func WithMaxDepth(d int) QueryOption {
	return func(q *Query) {
		if d > q.maxDepth {
			q.maxDepth = d
		}
	}
}

// ProjectOption configures a single projection run.
type ProjectOption func(*projectConfig)

type projectConfig struct {
	scratch  *Scratch
	maxDepth int
}

// WithScratch supplies a Scratch to reuse instead of acquiring one from
// the shared pool. The caller retains ownership and is responsible for
// releasing it.
func WithScratch(s *Scratch) ProjectOption {
	return func(c *projectConfig) { c.scratch = s }
}
