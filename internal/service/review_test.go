package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

// fakeBlobStorage is an in-memory BlobStorage with the same semantics as the
// real backends: nil for an absent blob, whole-blob replacement on Set.
type fakeBlobStorage struct {
	mu    sync.Mutex
	blobs map[int64][]byte
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{blobs: make(map[int64][]byte)}
}

func (f *fakeBlobStorage) Get(_ context.Context, userID int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blobs[userID], nil
}

func (f *fakeBlobStorage) Set(_ context.Context, userID int64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[userID] = data
	return nil
}

func reviewResult(text string) entities.QuestionResult {
	return entities.QuestionResult{
		QuestionText:  text,
		UserAnswer:    "wrong",
		CorrectAnswer: "right",
		IsCorrect:     false,
		Choices:       []string{"right", "wrong"},
	}
}

func TestReviewAddAndList(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	want := reviewResult("q1")
	if err := svc.Add(ctx, 1, want); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
	if !reflect.DeepEqual(list[0], want) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", list[0], want)
	}
}

func TestReviewAddDuplicate(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	if err := svc.Add(ctx, 1, reviewResult("q1")); err != nil {
		t.Fatal(err)
	}

	err := svc.Add(ctx, 1, reviewResult("q1"))
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("got %v, want ErrDuplicateEntry", err)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("duplicate add changed list length to %d", len(list))
	}
}

func TestReviewListKeepsInsertionOrder(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if err := svc.Add(ctx, 1, reviewResult(text)); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, text := range texts {
		if list[i].QuestionText != text {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].QuestionText, text)
		}
	}
}

func TestReviewRemove(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	if err := svc.Add(ctx, 1, reviewResult("q1")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(ctx, 1, reviewResult("q2")); err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveByQuestionText(ctx, 1, "q1"); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].QuestionText != "q2" {
		t.Fatalf("unexpected list after remove: %+v", list)
	}
}

func TestReviewRemoveNonexistentKey(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	if err := svc.Add(ctx, 1, reviewResult("q1")); err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveByQuestionText(ctx, 1, "never added"); err != nil {
		t.Fatalf("remove of missing key must not error, got %v", err)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("remove of missing key changed the store: %+v", list)
	}
}

func TestReviewCorruptBlobTreatedAsEmpty(t *testing.T) {
	blobs := newFakeBlobStorage()
	blobs.blobs[1] = []byte("{not json")

	svc := NewReviewService(blobs, zap.NewNop())
	ctx := context.Background()

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("corrupt blob must not propagate an error, got %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("corrupt blob must read as empty, got %+v", list)
	}

	// The store recovers on the next write.
	if err := svc.Add(ctx, 1, reviewResult("q1")); err != nil {
		t.Fatal(err)
	}
	list, err = svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("store did not recover after corrupt blob: %+v", list)
	}
}

func TestReviewConcurrentAddsLoseNothing(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Add(ctx, 1, reviewResult(fmt.Sprintf("q%02d", i))); err != nil {
				t.Errorf("add q%02d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != n {
		t.Fatalf("lost updates: %d entries persisted, want %d", len(list), n)
	}
}

func TestReviewListsAreSeparatePerUser(t *testing.T) {
	svc := NewReviewService(newFakeBlobStorage(), zap.NewNop())
	ctx := context.Background()

	if err := svc.Add(ctx, 1, reviewResult("q1")); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("user 2 sees user 1's entries: %+v", list)
	}
}
