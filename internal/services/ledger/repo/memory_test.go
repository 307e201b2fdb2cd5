package repo

import (
	"context"
	"testing"

	"rinkbot/internal/services/ledger/domain"
)

func TestMemoryFreshState(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	seen, err := m.SeenComment(ctx, "c1")
	if err != nil || seen {
		t.Fatalf("fresh comment should be unseen: %v %v", seen, err)
	}
	c, err := m.Counts(ctx, "sub1", "t2_a")
	if err != nil || c.Exists {
		t.Fatalf("fresh submission should have no record: %+v %v", c, err)
	}
}

func TestMemoryCommitCreatesRecordAndMarker(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	v, err := m.CommitAtomic(ctx, domain.CommitInput{
		SubmissionID: "sub1", AuthorID: "t2_a", CommentID: "c1",
		ThreadCap: 25, AuthorCap: 5,
	})
	if err != nil || !v.Allowed {
		t.Fatalf("commit: %+v %v", v, err)
	}

	seen, _ := m.SeenComment(ctx, "c1")
	if !seen {
		t.Fatalf("marker should be set after commit")
	}
	c, _ := m.Counts(ctx, "sub1", "t2_a")
	if !c.Exists || c.Total != 1 || c.Author != 1 {
		t.Fatalf("counts after first commit: %+v", c)
	}
}

func TestMemoryAllowlistedStillCounts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i, id := range []string{"c1", "c2"} {
		v, err := m.CommitAtomic(ctx, domain.CommitInput{
			SubmissionID: "sub1", AuthorID: "t2_boss", CommentID: id,
			ThreadCap: 1, AuthorCap: 1, Allowlisted: true,
		})
		if err != nil || !v.Allowed {
			t.Fatalf("allowlisted commit %d: %+v %v", i, v, err)
		}
	}
	c, _ := m.Counts(ctx, "sub1", "t2_boss")
	if c.Total != 2 || c.Author != 2 {
		t.Fatalf("allowlisted commits should still tally: %+v", c)
	}
}
