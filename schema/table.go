package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Sentinel errors for the reference table, matching spec §7's
// RefFetchError/RefCycleError taxonomy.
var (
	ErrFetch = errors.New("fetch reference")
	ErrCycle = errors.New("reference cycle")
)

// FetchError wraps an I/O or parse failure reaching a remote reference.
type FetchError struct {
	URI     string
	Cause   error
	Timeout bool
}

func (e *FetchError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("fetch %q: timed out", e.URI)
	}

	return fmt.Sprintf("fetch %q: %v", e.URI, e.Cause)
}

func (e *FetchError) Unwrap() error { return ErrFetch }

// CycleError reports a $ref chain exceeding the configured hop limit.
type CycleError struct {
	URI     string
	Pointer string
	Hops    int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s#%s: reference chain exceeded %d hops", e.URI, e.Pointer, e.Hops)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Fetcher loads a document's raw bytes given its normalized URI. The core
// never performs network I/O itself (spec §5); callers supply the fetcher
// appropriate to their environment. [FileFetcher] and [MemFetcher] cover
// the local/in-memory cases the core ships with.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FileFetcher reads documents from the local filesystem. URIs are treated
// as filesystem paths.
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	return os.ReadFile(uri)
}

// MemFetcher serves documents from an in-memory map, for dict/inline
// input and tests.
type MemFetcher map[string][]byte

func (m MemFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	data, ok := m[uri]
	if !ok {
		return nil, fmt.Errorf("%q: not found", uri)
	}

	return data, nil
}

// Reference is a value `{source_uri, pointer, resolved}`. Once Resolved is
// populated it is never changed; see [Table.Dereference].
type Reference struct {
	SourceURI string
	Pointer   string
	Resolved  *SchemaId
}

// SchemaId is an opaque, comparable handle assigned monotonically during
// resolution. Two references to the same fragment yield the same id.
type SchemaId uint64

type fragmentKey struct {
	uri     string
	pointer string
}

// Table stores Map<(URI, JSONPointer), RawSchema>, performing lazy fetch &
// memoization. The zero value is not usable; construct with [NewTable].
type Table struct {
	mu sync.Mutex

	fetcher Fetcher
	maxHops int

	docs  map[string]*Document // normalized URI -> parsed document
	order []string             // first-seen URI order, for deterministic diagnostics

	ids       map[fragmentKey]SchemaId
	fragments map[SchemaId]Node
	keys      map[SchemaId]fragmentKey
	next      SchemaId
}

// DefaultMaxHops is the default chained-$ref hop limit before
// [Table.Dereference] fails with [CycleError].
const DefaultMaxHops = 64

// NewTable creates an empty reference table backed by fetcher. maxHops <= 0
// uses [DefaultMaxHops].
func NewTable(fetcher Fetcher, maxHops int) *Table {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	return &Table{
		fetcher:   fetcher,
		maxHops:   maxHops,
		docs:      make(map[string]*Document),
		ids:       make(map[fragmentKey]SchemaId),
		fragments: make(map[SchemaId]Node),
		keys:      make(map[SchemaId]fragmentKey),
	}
}

// Intern assigns (or returns the existing) SchemaId for the fragment at
// (uri, pointer) within an already-fetched document. Pure and idempotent:
// calling it twice with the same key never allocates a second id.
func (t *Table) Intern(uri, pointer string, node Node) SchemaId {
	uri = normalizeURI(uri)

	t.mu.Lock()
	defer t.mu.Unlock()

	key := fragmentKey{uri: uri, pointer: pointer}
	if id, ok := t.ids[key]; ok {
		return id
	}

	id := t.next
	t.next++

	t.ids[key] = id
	t.fragments[id] = node
	t.keys[id] = key

	return id
}

// Fragment returns the RawSchema fragment for a previously interned id.
func (t *Table) Fragment(id SchemaId) (Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.fragments[id]

	return n, ok
}

// Key returns the (URI, pointer) pair an id was interned under.
func (t *Table) Key(id SchemaId) (uri, pointer string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k, ok := t.keys[id]
	if !ok {
		return "", "", false
	}

	return k.uri, k.pointer, true
}

// Fetch loads a document once per URI; subsequent calls return the cached
// tree. An empty uri refers to the table's already-registered "current"
// document set via [Table.Register] and is a no-op cache hit.
func (t *Table) Fetch(ctx context.Context, uri string) (*Document, error) {
	norm := normalizeURI(uri)

	t.mu.Lock()
	if doc, ok := t.docs[norm]; ok {
		t.mu.Unlock()

		return doc, nil
	}
	t.mu.Unlock()

	if t.fetcher == nil {
		return nil, &FetchError{URI: uri, Cause: errors.New("no fetcher configured")}
	}

	data, err := t.fetcher.Fetch(ctx, uri)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &FetchError{URI: uri, Cause: err, Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded)}
		}

		return nil, &FetchError{URI: uri, Cause: err}
	}

	var root Node

	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &FetchError{URI: uri, Cause: fmt.Errorf("parse: %w", err)}
	}

	return t.Register(norm, root), nil
}

// Register installs an already-parsed document (e.g. from a YAML or
// GraphQL-derived tree) under uri, without going through [Table.Fetch]'s
// byte-level loader. Deterministic first-seen order is preserved: the URI
// is appended to the order list the first time it is registered.
func (t *Table) Register(uri string, root Node) *Document {
	norm := normalizeURI(uri)

	t.mu.Lock()
	defer t.mu.Unlock()

	if doc, ok := t.docs[norm]; ok {
		return doc
	}

	doc := &Document{URI: norm, Root: root}
	t.docs[norm] = doc
	t.order = append(t.order, norm)

	return doc
}

// Documents returns registered documents in first-seen order.
func (t *Table) Documents() []*Document {
	t.mu.Lock()
	defer t.mu.Unlock()

	docs := make([]*Document, 0, len(t.order))
	for _, uri := range t.order {
		docs = append(docs, t.docs[uri])
	}

	return docs
}

// Dereference resolves a $ref string against baseURI, following chained
// $refs up to the table's hop limit. It returns the SchemaId of the final
// fragment without expanding it -- expansion is the model builder's job
// (C4), which lets cyclic schemas resolve without infinite recursion.
func (t *Table) Dereference(ctx context.Context, baseURI, ref string) (SchemaId, error) {
	uri := baseURI
	pointer := ref

	for hop := 0; hop < t.maxHops; hop++ {
		refURI, refPointer := splitRef(pointer)

		if refURI != "" {
			if !isAbsoluteURI(refURI) && uri != "" {
				refURI = resolveRelativeURI(uri, refURI)
			}

			uri = refURI
		}

		doc, err := t.Fetch(ctx, uri)
		if err != nil {
			return 0, err
		}

		node, ok := Walk(doc.Root, refPointer)
		if !ok {
			return 0, fmt.Errorf("%w: %s#%s: fragment not found", ErrFetch, uri, refPointer)
		}

		id := t.Intern(uri, refPointer, node)

		if node.Ref == "" {
			return id, nil
		}

		// Chained $ref: keep following from this node's own ref.
		pointer = node.Ref
	}

	return 0, &CycleError{URI: uri, Pointer: pointer, Hops: t.maxHops}
}
