package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

var (
	// ErrNotFound is returned when an update references an unknown post id.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateID is returned when an insert reuses an existing post id.
	ErrDuplicateID = errors.New("duplicate post id")
)

// FeedStore is the authoritative in-memory post collection shared by every
// view. All mutations go through Insert/Update/Replace; readers always get
// copies, never aliases into the underlying slice, so a stale read can never
// be written back around the store's lock.
type FeedStore struct {
	mu       sync.RWMutex
	posts    []model.Post
	byID     map[string]int // id -> index into posts
	revision uint64
}

// New creates an empty FeedStore.
func New() *FeedStore {
	return &FeedStore{
		byID: make(map[string]int),
	}
}

// Insert prepends a post to the collection (most-recent-first insertion
// order). It fails with ErrDuplicateID if the id already exists.
func (s *FeedStore) Insert(post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[post.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, post.ID)
	}

	s.posts = append([]model.Post{post.Clone()}, s.posts...)
	s.reindexLocked()
	s.revision++
	return nil
}

// Get returns the post with the given id, or ErrNotFound.
func (s *FeedStore) Get(id string) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.posts[idx].Clone(), nil
}

// All returns a copy of the current collection in insertion order.
func (s *FeedStore) All() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

// Update replaces the post with matching id wholesale. It returns
// ErrNotFound if no such post exists; the collection is left untouched.
func (s *FeedStore) Update(post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[post.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, post.ID)
	}

	s.posts[idx] = post.Clone()
	s.revision++
	return nil
}

// Mutate applies fn to the current record with the given id, atomically:
// the read, the mutation, and the write-back all happen under the store's
// lock, so concurrent mutations can never lose each other's changes. fn
// receives a copy and must not retain it; the post id is not mutable.
// Mutate returns a copy of the resulting post, or ErrNotFound.
func (s *FeedStore) Mutate(id string, fn func(*model.Post)) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	post := s.posts[idx].Clone()
	fn(&post)
	post.ID = id

	s.posts[idx] = post.Clone()
	s.revision++
	return post, nil
}

// Replace discards the current collection and installs the given posts in
// order. Posts with duplicate ids are dropped, first occurrence wins.
func (s *FeedStore) Replace(posts []model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = s.posts[:0]
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		s.posts = append(s.posts, p.Clone())
	}
	s.reindexLocked()
	s.revision++
}

// Len returns the number of posts currently held.
func (s *FeedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Revision returns a counter that increments on every mutation. Views can
// poll it to know whether a cached projection is stale.
func (s *FeedStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *FeedStore) reindexLocked() {
	s.byID = make(map[string]int, len(s.posts))
	for i, p := range s.posts {
		s.byID[p.ID] = i
	}
}
