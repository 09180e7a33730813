package comments

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"

	"github.com/avaldes/blogboard/internal/model"
	"github.com/avaldes/blogboard/internal/store"
	"github.com/avaldes/blogboard/internal/users"
)

// UnknownUser is what UsernameFor reports for ids missing from the roster.
const UnknownUser = "unknown user"

// Store loads and appends comments against the remote store's comments
// collection.
type Store struct {
	client          *store.Client
	directory       *users.Directory
	defaultUsername string
}

// NewStore creates a comment store. defaultUsername drives active-identity
// resolution when a thread is opened.
func NewStore(client *store.Client, directory *users.Directory, defaultUsername string) *Store {
	return &Store{
		client:          client,
		directory:       directory,
		defaultUsername: defaultUsername,
	}
}

// ListForBlog fetches all comments attached to a blog, in store order. The
// store's order is treated as chronological for display; no sort is applied.
func (s *Store) ListForBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	var matches []model.Comment
	if err := s.client.Fetch(ctx, "comments", map[string]string{"blogId": blogID}, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Thread is the comment surface for a single blog view: the loaded comment
// list, the user roster, and the active identity attributed to new comments.
type Thread struct {
	store  *Store
	blogID string

	mu       sync.Mutex
	active   *model.User
	roster   map[string]string
	comments []model.Comment
}

// Open initializes a thread for a blog view. Loading the comment list and
// resolving the active identity run concurrently; neither waits for the
// other. A failed identity load leaves the thread readable but not
// submittable, a failed comment load is an error.
func (s *Store) Open(ctx context.Context, blogID string) (*Thread, error) {
	type usersResult struct {
		all []model.User
		err error
	}
	type commentsResult struct {
		list []model.Comment
		err  error
	}

	usersCh := make(chan usersResult, 1)
	commentsCh := make(chan commentsResult, 1)

	go func() {
		all, err := s.directory.List(ctx)
		usersCh <- usersResult{all: all, err: err}
	}()

	go func() {
		list, err := s.ListForBlog(ctx, blogID)
		commentsCh <- commentsResult{list: list, err: err}
	}()

	thread := &Thread{
		store:  s,
		blogID: blogID,
		roster: make(map[string]string),
	}

	ur := <-usersCh
	cr := <-commentsCh

	if cr.err != nil {
		return nil, cr.err
	}
	thread.comments = cr.list

	if ur.err != nil {
		// Read-only thread: comments stay viewable, submission is a no-op.
		log.Printf("resolving active identity for blog %s: %v", blogID, ur.err)
		return thread, nil
	}

	for _, u := range ur.all {
		thread.roster[u.ID] = u.Username
	}
	thread.active = users.SelectDefault(ur.all, s.defaultUsername)

	return thread, nil
}

// BlogID returns the blog this thread is attached to.
func (t *Thread) BlogID() string {
	return t.blogID
}

// ActiveUser returns the resolved identity, or nil when the thread is
// read-only.
func (t *Thread) ActiveUser() *model.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Comments returns a snapshot of the in-memory comment list.
func (t *Thread) Comments() []model.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make([]model.Comment, len(t.comments))
	copy(snapshot, t.comments)
	return snapshot
}

// Submit trims rawText and appends a new comment attributed to the active
// identity. Empty trimmed text or a missing identity is a silent no-op
// returning (nil, nil), not an error. On success the locally constructed
// comment is appended to the in-memory list as-is; its locally generated id
// stays authoritative for the session even if the store assigns another one.
func (t *Thread) Submit(ctx context.Context, rawText string) (*model.Comment, error) {
	content := strings.TrimSpace(rawText)
	if content == "" {
		return nil, nil
	}

	t.mu.Lock()
	active := t.active
	t.mu.Unlock()
	if active == nil {
		return nil, nil
	}

	comment := model.Comment{
		ID:      newCommentID(),
		BlogID:  t.blogID,
		UserID:  active.ID,
		Content: content,
	}

	var echo model.Comment
	if err := t.store.client.Create(ctx, "comments", comment, &echo); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.comments = append(t.comments, comment)
	t.mu.Unlock()

	return &comment, nil
}

// UsernameFor resolves a user id against the roster loaded at Open time.
// Unknown ids yield the UnknownUser placeholder; this never fails.
func (t *Thread) UsernameFor(userID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if name, ok := t.roster[userID]; ok {
		return name
	}
	return UnknownUser
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const idLength = 7

// newCommentID generates a short random base36 token. Collisions are
// possible but not checked, matching the store's tolerance for them.
func newCommentID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
