package fieldproj

// fieldSet is a consumable collection of requested keys: matching a key
// removes it, so a record yields it at most once.
// A nil nested pointer means the key's stored value is Simple; otherwise
// the key is a path prefix of deeper requested paths.
type fieldSet struct {
	entries map[string]*fieldSet
}

func newFieldSet() *fieldSet {
	return &fieldSet{entries: make(map[string]*fieldSet)}
}

// lookup reports whether key is registered and, if so, whether it is a
// leaf (Simple) match or carries a nested field set for deeper paths.
func (fs *fieldSet) lookup(key string) (nested *fieldSet, ok bool) {
	nested, ok = fs.entries[key]
	return nested, ok
}

// consume removes a leaf match so later occurrences of the same key in
// one record are not yielded again.
func (fs *fieldSet) consume(key string) {
	delete(fs.entries, key)
}

func (fs *fieldSet) empty() bool {
	return len(fs.entries) == 0
}

// Query owns the field set a projection run is matched against, built
// from a collection of field paths. A single-component path matches a
// top-level key; longer paths populate nested field sets consumed at the
// matching depth.
type Query struct {
	root     *fieldSet
	maxDepth int
}

// NewQuery builds a Query from field paths; each path is a non-empty
// ordered sequence of key components. A path with a single component
// requests a top-level key; additional components request a key nested
// inside the previous component's object.
func NewQuery(paths [][]string, opts ...QueryOption) *Query {
	q := &Query{root: newFieldSet()}
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		insertPath(q.root, path)
		if len(path) > q.maxDepth {
			q.maxDepth = len(path)
		}
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func insertPath(fs *fieldSet, path []string) {
	head := path[0]
	if len(path) == 1 {
		if _, exists := fs.entries[head]; !exists {
			fs.entries[head] = nil
		}
		return
	}
	child, ok := fs.entries[head]
	if !ok || child == nil {
		child = newFieldSet()
		fs.entries[head] = child
	}
	insertPath(child, path[1:])
}

// Done reports whether the top-level field set is empty, i.e. every
// top-level key this query can still match has already been consumed.
func (q *Query) Done() bool {
	return q.root.empty()
}
