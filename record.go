package fieldproj

import (
	"sort"
	"sync"
)

// Scratch holds the per-record bitmaps reused across projection runs so a
// caller iterating many records does not allocate a fresh set per record.
type Scratch struct {
	structuralChars
	stringMask   []word
	maskedColon  []word
	maskedLBrace []word
	maskedRBrace []word
}

var scratchPool = sync.Pool{
	New: func() any { return new(Scratch) },
}

// AcquireScratch returns a Scratch from the shared pool. Callers that
// project many records in a loop without an explicit WithScratch should
// still call ReleaseScratch when done so the pool can reuse the buffers.
func AcquireScratch() *Scratch { return scratchPool.Get().(*Scratch) }

// ReleaseScratch returns s to the shared pool.
func ReleaseScratch(s *Scratch) { scratchPool.Put(s) }

// candidate is one colon position still to be matched against the field
// set, at a given nesting depth.
type candidate struct {
	depth int
	pos   int
}

// Projection is a pull-style iterator over one record's matches: Next
// advances to the next matching (key, value) pair, Pair returns the pair
// last produced by Next, and Err reports whether iteration stopped early
// because of malformed input.
type Projection struct {
	buf        []byte
	query      *Query
	depthKeys  []map[string]*fieldSet // depth -> key -> owning fieldSet node
	candidates []candidate
	idx        int

	key string
	val Value
	err error

	scratch     *Scratch
	ownsScratch bool
}

// NewProjection builds a Projection for one JSON object record against q.
// The bitmap pipeline runs eagerly (it is not incremental across colons);
// key and value extraction are deferred to Next.
func NewProjection(buf []byte, q *Query, opts ...ProjectOption) *Projection {
	cfg := projectConfig{maxDepth: q.maxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth < 1 {
		cfg.maxDepth = 1
	}

	p := &Projection{buf: buf, query: q}
	if cfg.scratch != nil {
		p.scratch = cfg.scratch
	} else {
		p.scratch = AcquireScratch()
		p.ownsScratch = true
	}

	sc := buildStructuralChars(buf, p.scratch.structuralChars)
	p.scratch.structuralChars = sc

	// filterStructuralQuotes always allocates and leaves sc.quote untouched,
	// so the scratch keeps M_" exactly as built.
	q2 := filterStructuralQuotes(sc.quote, sc.backslash)
	s := buildStringInteriorMask(q2, p.scratch.stringMask)
	p.scratch.stringMask = s

	colon := applyStringMask(sc.colon, s, p.scratch.maskedColon)
	lbrace := applyStringMask(sc.lbrace, s, p.scratch.maskedLBrace)
	rbrace := applyStringMask(sc.rbrace, s, p.scratch.maskedRBrace)
	p.scratch.maskedColon, p.scratch.maskedLBrace, p.scratch.maskedRBrace = colon, lbrace, rbrace

	levels, err := buildLeveledColons(lbrace, rbrace, colon, cfg.maxDepth)
	if err != nil {
		p.err = err
		p.release()
		return p
	}

	p.depthKeys = buildDepthKeys(q.root, cfg.maxDepth)
	for d := 0; d < cfg.maxDepth; d++ {
		if len(p.depthKeys[d]) == 0 {
			continue
		}
		for _, pos := range positions(levels[d]) {
			p.candidates = append(p.candidates, candidate{depth: d, pos: pos})
		}
	}
	// Matches are emitted in the order the keys appear in the source
	// record, regardless of which level each colon came from.
	sort.Slice(p.candidates, func(a, b int) bool {
		return p.candidates[a].pos < p.candidates[b].pos
	})
	return p
}

// buildDepthKeys flattens the field-set tree into one consumable map per
// depth, keyed only by name: the leveled-colon builder tracks nesting
// depth but not which specific enclosing object a colon belongs to, so a
// nested request is matched by (depth, key name) rather than full parent
// path. Each map value is the originating fieldSet node so a match can be
// consumed from the tree Query.Done observes.
func buildDepthKeys(root *fieldSet, maxDepth int) []map[string]*fieldSet {
	depths := make([]map[string]*fieldSet, maxDepth)
	for i := range depths {
		depths[i] = make(map[string]*fieldSet)
	}
	level := []*fieldSet{root}
	for d := 0; d < maxDepth && len(level) > 0; d++ {
		var next []*fieldSet
		for _, fs := range level {
			for key, nested := range fs.entries {
				if nested == nil {
					depths[d][key] = fs
				} else {
					next = append(next, nested)
				}
			}
		}
		level = next
	}
	return depths
}

// Next advances to the next matching pair, returning false when the field
// set is exhausted, the candidate list is exhausted, or a malformed value
// aborts iteration. Pairs already emitted stand; a caller seeing Err
// non-nil holds an incomplete record, not an empty one.
func (p *Projection) Next() bool {
	if p.err != nil {
		return false
	}
	for p.idx < len(p.candidates) {
		c := p.candidates[p.idx]
		p.idx++

		key, ok := ExtractKey(p.buf, c.pos)
		if !ok {
			continue
		}
		owner, ok := p.depthKeys[c.depth][key]
		if !ok {
			continue
		}
		if _, stillWanted := owner.entries[key]; !stillWanted {
			continue // already matched earlier in this record
		}
		owner.consume(key)

		rest := afterColon(p.buf, c.pos)
		val, _, err := ParseValue(rest)
		if err != nil {
			p.err = err
			p.release()
			return false
		}

		p.key, p.val = key, val
		return true
	}
	p.release()
	return false
}

// afterColon returns the slice starting at the first non-space byte after
// the colon at colonPos.
func afterColon(buf []byte, colonPos int) []byte {
	i := colonPos + 1
	for i < len(buf) && isJSONSpace(buf[i]) {
		i++
	}
	return buf[i:]
}

// Pair returns the (key, value) produced by the most recent call to Next
// that returned true.
func (p *Projection) Pair() (string, Value) { return p.key, p.val }

// Err reports the error, if any, that caused Next to stop early.
func (p *Projection) Err() error { return p.err }

func (p *Projection) release() {
	if p.ownsScratch && p.scratch != nil {
		ReleaseScratch(p.scratch)
		p.scratch = nil
		p.ownsScratch = false
	}
}
