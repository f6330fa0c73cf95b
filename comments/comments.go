// Package comments maintains the ordered comment thread of one recipe, with
// optimistic append and delete-marking compensated on failure.
package comments

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"forkful/events"
	"forkful/faults"
	"forkful/models"
)

// MaxLen is the comment length ceiling in characters.
const MaxLen = 500

// API is the comment slice of the gateway.
type API interface {
	ListComments(ctx context.Context, recipeID string) (*models.CommentsResponse, error)
	CreateComment(ctx context.Context, recipeID, text string) (*models.CommentResponse, error)
	DeleteComment(ctx context.Context, recipeID, commentID string) (*models.MessageResponse, error)
}

// PostState is the lifecycle of a pending comment.
type PostState int

const (
	Draft PostState = iota
	Posting
	Posted
	Failed
)

func (s PostState) String() string {
	switch s {
	case Draft:
		return "draft"
	case Posting:
		return "posting"
	case Posted:
		return "posted"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type pendingComment struct {
	Text  string
	State PostState
}

// Thread holds the comment list of a single recipe.
type Thread struct {
	api      API
	recipeID string
	ownerID  string

	mu       sync.Mutex
	comments []models.Comment
	deleting map[string]bool
	pending  *pendingComment
}

func NewThread(api API, recipeID, ownerID string) *Thread {
	return &Thread{
		api:      api,
		recipeID: recipeID,
		ownerID:  ownerID,
		deleting: make(map[string]bool),
	}
}

func (t *Thread) Load(ctx context.Context) ([]models.Comment, error) {
	resp, err := t.api.ListComments(ctx, t.recipeID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.comments = resp.Comments
	t.mu.Unlock()
	return t.Comments(), nil
}

// ValidateText applies the pre-network rules: non-empty after trimming and at
// most MaxLen characters.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", faults.Validationf("comment text is empty")
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxLen {
		return "", faults.Validationf("comment text is %d characters, limit is %d", n, MaxLen)
	}
	return trimmed, nil
}

// Add posts a new comment. The draft moves Draft -> Posting; on success the
// server-returned comment (with its assigned id and timestamps) is prepended
// and the draft is Posted; on failure the draft is discarded, never left
// half-inserted. At most one draft may be posting at a time.
func (t *Thread) Add(ctx context.Context, user models.User, text string) (*models.Comment, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, faults.Validationf("not logged in")
	}

	t.mu.Lock()
	if t.pending != nil {
		t.mu.Unlock()
		return nil, faults.Validationf("another comment is still posting")
	}
	t.pending = &pendingComment{Text: trimmed, State: Posting}
	t.mu.Unlock()

	resp, err := t.api.CreateComment(ctx, t.recipeID, trimmed)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		// Posting -> Failed: the attempt is discarded outright.
		t.pending = nil
		return nil, err
	}
	// Posting -> Posted: adopt the server-assigned comment verbatim.
	t.pending = nil
	t.comments = append([]models.Comment{resp.Comment}, t.comments...)

	events.Emit("comment-added", events.Index{
		EntityType: "recipe", Method: "POST",
		EntityId: t.recipeID, ItemId: resp.Comment.ID, ItemType: "comment",
	})
	out := resp.Comment
	return &out, nil
}

// CanDelete reports whether user may delete the comment: its author or the
// recipe owner.
func (t *Thread) CanDelete(c models.Comment, user models.User) bool {
	if user.ID == "" {
		return false
	}
	return c.CreatedBy.ID == user.ID || t.ownerID == user.ID
}

// Remove deletes a comment. The target is marked deleting so a second call
// for the same id while one is outstanding is a local no-op; on failure the
// mark is cleared and the comment stays in place.
func (t *Thread) Remove(ctx context.Context, user models.User, commentID string) error {
	t.mu.Lock()
	target, ok := t.findLocked(commentID)
	if !ok {
		t.mu.Unlock()
		return faults.Validationf("comment %s is not in this thread", commentID)
	}
	if !t.CanDelete(target, user) {
		t.mu.Unlock()
		return faults.Validationf("not allowed to delete this comment")
	}
	if t.deleting[commentID] {
		t.mu.Unlock()
		return nil
	}
	t.deleting[commentID] = true
	t.mu.Unlock()

	_, err := t.api.DeleteComment(ctx, t.recipeID, commentID)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.deleting, commentID)
	if err != nil {
		return err
	}
	t.removeLocked(commentID)

	events.Emit("comment-deleted", events.Index{
		EntityType: "recipe", Method: "DELETE",
		EntityId: t.recipeID, ItemId: commentID, ItemType: "comment",
	})
	return nil
}

func (t *Thread) findLocked(commentID string) (models.Comment, bool) {
	for _, c := range t.comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return models.Comment{}, false
}

func (t *Thread) removeLocked(commentID string) {
	out := t.comments[:0]
	for _, c := range t.comments {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	t.comments = out
}

// Comments returns a copy of the thread, newest first.
func (t *Thread) Comments() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Pending reports the optimistic draft currently posting, if any, so the UI
// can render it ahead of server confirmation.
func (t *Thread) Pending() (string, PostState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return "", Draft, false
	}
	return t.pending.Text, t.pending.State, true
}

// Deleting reports whether a delete is in flight for the given id.
func (t *Thread) Deleting(commentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleting[commentID]
}
