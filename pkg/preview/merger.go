package preview

import (
	"sync"
	"time"

	"ai-chat-history-be/internal/entity"

	"github.com/google/uuid"
)

// Merger accumulates successive pages of previews into a flat, de-duplicated,
// order-preserving list and re-derives the six-bucket categorization on every
// append. It is the single-writer cache behind one chat-list view.
//
// Pages may complete out of order under network jitter; they are staged by
// offset and committed only once contiguous with what has been committed
// already, so the flat list keeps strict backend order.
type Merger struct {
	mu  sync.Mutex
	loc *time.Location

	flat        []entity.ChatPreview
	seen        map[uuid.UUID]struct{}
	categorized CategorizedChats
	hasMore     bool
	nextOffset  int
	pending     map[int]stagedPage
}

// stagedPage remembers the size its fetch asked for, so the frontier stride
// and the hasMore signal track what was requested rather than a fixed
// configured size.
type stagedPage struct {
	items     []entity.ChatPreview
	requested int
}

func NewMerger(loc *time.Location) *Merger {
	return &Merger{
		loc:     loc,
		seen:    make(map[uuid.UUID]struct{}),
		pending: make(map[int]stagedPage),
		hasMore: true,
	}
}

// AppendPage merges one fetched page into the accumulated state. requested
// is the size the fetch asked for: a page shorter than it means the backend
// is exhausted, and a committed page advances the frontier by it.
//
// A page at an already-committed offset is treated as a retry: its entries
// de-duplicate away and the merge is idempotent. A page ahead of the commit
// frontier is staged until the gap fills. Categorization is recomputed over
// the entire flat list with the supplied now, since bucket membership drifts
// as real time passes.
func (m *Merger) AppendPage(offset int, page []entity.ChatPreview, requested int, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if offset < m.nextOffset {
		// Retry of a committed page. Dedupe handles repeats; the hasMore
		// signal stays owned by the frontier page.
		m.commit(page)
	} else {
		m.pending[offset] = stagedPage{items: page, requested: requested}
		for {
			staged, ok := m.pending[m.nextOffset]
			if !ok {
				break
			}
			delete(m.pending, m.nextOffset)
			m.commit(staged.items)
			m.hasMore = len(staged.items) == staged.requested
			m.nextOffset += staged.requested
		}
	}

	m.categorized = Categorize(m.flat, now, m.loc)
}

func (m *Merger) commit(page []entity.ChatPreview) {
	for _, p := range page {
		if _, dup := m.seen[p.Id]; dup {
			continue
		}
		m.seen[p.Id] = struct{}{}
		m.flat = append(m.flat, p)
	}
}

// Remove drops a preview from the accumulated state, used after a session
// deletion so the caller does not have to refetch every page.
func (m *Merger) Remove(id uuid.UUID, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.seen[id]; !ok {
		return
	}
	delete(m.seen, id)

	filtered := m.flat[:0]
	for _, p := range m.flat {
		if p.Id != id {
			filtered = append(filtered, p)
		}
	}
	m.flat = filtered
	m.categorized = Categorize(m.flat, now, m.loc)
}

// Recategorize rebuilds the buckets against a fresh now without new data,
// for views held open across a bucket boundary (midnight, say).
func (m *Merger) Recategorize(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categorized = Categorize(m.flat, now, m.loc)
}

// NextOffset is the offset the next fetch should request.
func (m *Merger) NextOffset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextOffset
}

// FlatList returns a copy of the accumulated previews in merge order.
func (m *Merger) FlatList() []entity.ChatPreview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.ChatPreview, len(m.flat))
	copy(out, m.flat)
	return out
}

// Categorized returns the bucketing derived on the most recent append.
func (m *Merger) Categorized() CategorizedChats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categorized
}

// HasMore is true iff the most recently committed frontier page came back
// as long as its fetch requested.
func (m *Merger) HasMore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasMore
}
