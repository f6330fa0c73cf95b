package comments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"forkful/faults"
	"forkful/models"
)

type fakeAPI struct {
	mu          sync.Mutex
	listResp    []models.Comment
	createCalls int
	createErr   error
	createGate  chan struct{}
	deleteCalls int
	deleteErr   error
	deleteGate  chan struct{}
}

func (f *fakeAPI) ListComments(ctx context.Context, recipeID string) (*models.CommentsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Comment, len(f.listResp))
	copy(out, f.listResp)
	return &models.CommentsResponse{Comments: out}, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, recipeID, text string) (*models.CommentResponse, error) {
	f.mu.Lock()
	f.createCalls++
	gate := f.createGate
	err := f.createErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &models.CommentResponse{Comment: models.Comment{
		ID: "srv-1", Text: text, RecipeID: recipeID,
		CreatedBy: models.UserRef{ID: "u1", Username: "alice"},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, recipeID, commentID string) (*models.MessageResponse, error) {
	f.mu.Lock()
	f.deleteCalls++
	gate := f.deleteGate
	err := f.deleteErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &models.MessageResponse{Message: "deleted"}, nil
}

var (
	alice = models.User{ID: "u1", Username: "alice"}
	bob   = models.User{ID: "u2", Username: "bob"}
)

func newTestThread(api *fakeAPI) *Thread {
	return NewThread(api, "r1", "owner1")
}

func TestAddValidatesLength(t *testing.T) {
	api := &fakeAPI{}
	th := newTestThread(api)

	cases := []struct {
		name string
		text string
		ok   bool
	}{
		{"empty", "", false},
		{"whitespace", "   \n\t ", false},
		{"exactly 500", strings.Repeat("a", 500), true},
		{"501", strings.Repeat("a", 501), false},
	}
	for _, tc := range cases {
		_, err := th.Add(context.Background(), alice, tc.text)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !faults.IsValidation(err) {
			t.Errorf("%s: want validation failure, got %v", tc.name, err)
		}
	}
	if api.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1 (only the valid text)", api.createCalls)
	}
}

func TestAddPrependsServerComment(t *testing.T) {
	api := &fakeAPI{listResp: []models.Comment{{ID: "old", Text: "first!"}}}
	th := newTestThread(api)
	if _, err := th.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	added, err := th.Add(context.Background(), alice, "  tasty  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != "srv-1" {
		t.Fatalf("client kept its own id %q instead of the server's", added.ID)
	}
	if added.Text != "tasty" {
		t.Errorf("text = %q, want trimmed %q", added.Text, "tasty")
	}

	thread := th.Comments()
	if len(thread) != 2 || thread[0].ID != "srv-1" || thread[1].ID != "old" {
		t.Fatalf("thread = %+v, want new comment prepended", thread)
	}
	if _, _, pending := th.Pending(); pending {
		t.Error("pending draft survived a successful post")
	}
}

func TestAddFailureDiscardsDraft(t *testing.T) {
	api := &fakeAPI{
		listResp:  []models.Comment{{ID: "old"}},
		createErr: faults.Rejectedf(500, "boom"),
	}
	th := newTestThread(api)
	if _, err := th.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := th.Add(context.Background(), alice, "hello"); !faults.IsRejected(err) {
		t.Fatalf("want rejected fault, got %v", err)
	}
	if got := th.Comments(); len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("failed post left the thread as %+v", got)
	}
	if _, _, pending := th.Pending(); pending {
		t.Error("failed draft was not discarded")
	}
}

func TestAddWhileAnotherIsPostingRejected(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{createGate: gate}
	th := newTestThread(api)

	done := make(chan error, 1)
	go func() {
		_, err := th.Add(context.Background(), alice, "first")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, _, pending := th.Pending(); pending {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first post never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	// Second post while the first is in flight is refused locally.
	if _, err := th.Add(context.Background(), bob, "second"); !faults.IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
	if api.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", api.createCalls)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first post: %v", err)
	}

	// The slot frees up once the first post settles.
	if _, err := th.Add(context.Background(), bob, "second try"); err != nil {
		t.Fatalf("post after settle: %v", err)
	}
	if api.createCalls != 2 {
		t.Fatalf("createCalls = %d, want 2", api.createCalls)
	}
}

func TestDoubleDeleteIssuesOneCall(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{
		listResp:   []models.Comment{{ID: "c1", CreatedBy: models.UserRef{ID: alice.ID}}},
		deleteGate: gate,
	}
	th := newTestThread(api)
	if _, err := th.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- th.Remove(context.Background(), alice, "c1") }()

	deadline := time.Now().Add(2 * time.Second)
	for !th.Deleting("c1") {
		if time.Now().After(deadline) {
			t.Fatal("first delete never marked the comment")
		}
		time.Sleep(time.Millisecond)
	}

	// Second delete while the first is outstanding: local no-op.
	if err := th.Remove(context.Background(), alice, "c1"); err != nil {
		t.Fatalf("concurrent delete: %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if api.deleteCalls != 1 {
		t.Fatalf("deleteCalls = %d, want exactly 1", api.deleteCalls)
	}
	if len(th.Comments()) != 0 {
		t.Fatal("comment not removed after successful delete")
	}
}

func TestDeleteFailureRollsBackMark(t *testing.T) {
	api := &fakeAPI{
		listResp:  []models.Comment{{ID: "c1", CreatedBy: models.UserRef{ID: alice.ID}}},
		deleteErr: faults.Transportf(errors.New("refused"), "network down"),
	}
	th := newTestThread(api)
	if _, err := th.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := th.Remove(context.Background(), alice, "c1"); !faults.IsTransport(err) {
		t.Fatalf("want transport fault, got %v", err)
	}
	if th.Deleting("c1") {
		t.Error("deleting mark not cleared after failure")
	}
	if got := th.Comments(); len(got) != 1 {
		t.Fatalf("comment silently disappeared on error: %+v", got)
	}

	// The comment is deletable again once the mark is cleared.
	api.mu.Lock()
	api.deleteErr = nil
	api.mu.Unlock()
	if err := th.Remove(context.Background(), alice, "c1"); err != nil {
		t.Fatalf("retry delete: %v", err)
	}
}

func TestDeleteEligibility(t *testing.T) {
	api := &fakeAPI{listResp: []models.Comment{{ID: "c1", CreatedBy: models.UserRef{ID: alice.ID}}}}
	th := newTestThread(api)
	if _, err := th.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	// bob is neither the author nor the recipe owner.
	if err := th.Remove(context.Background(), bob, "c1"); !faults.IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
	if api.deleteCalls != 0 {
		t.Fatalf("unauthorized delete reached the network")
	}

	// The recipe owner may delete someone else's comment.
	recipeOwner := models.User{ID: "owner1", Username: "chef"}
	if err := th.Remove(context.Background(), recipeOwner, "c1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
