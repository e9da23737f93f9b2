package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

func post(id string) model.Post {
	return model.Post{
		ID:         id,
		Author:     "Reuters",
		Content:    "content of " + id,
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TrustScore: 90,
		CrowdScore: 50,
		Verdict:    model.VerdictTrue,
		Type:       model.TypePost,
	}
}

func TestInsert_RoundTrip(t *testing.T) {
	s := New()
	want := post("p1")
	want.Votes = []model.CommunityVote{{UserID: "u1", Verdict: model.VoteReal, UserCredibility: 80}}

	if err := s.Insert(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("p1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestInsert_PrependsNewest(t *testing.T) {
	s := New()
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := s.Insert(post(id)); err != nil {
			t.Fatal(err)
		}
	}

	all := s.All()
	if all[0].ID != "p3" || all[1].ID != "p2" || all[2].ID != "p1" {
		t.Errorf("order = %s,%s,%s, want p3,p2,p1", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	s := New()
	if err := s.Insert(post("p1")); err != nil {
		t.Fatal(err)
	}
	err := s.Insert(post("p1"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestUpdate_ReplacesExactlyOne(t *testing.T) {
	s := New()
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := s.Insert(post(id)); err != nil {
			t.Fatal(err)
		}
	}

	changed := post("p2")
	changed.CrowdScore = 75
	if err := s.Update(changed); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get("p2")
	if got.CrowdScore != 75 {
		t.Errorf("p2 crowd score = %d, want 75", got.CrowdScore)
	}
	for _, id := range []string{"p1", "p3"} {
		other, _ := s.Get(id)
		if other.CrowdScore != 50 {
			t.Errorf("%s crowd score = %d, want untouched 50", id, other.CrowdScore)
		}
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	s := New()
	err := s.Update(post("ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMutate_AppliesAtomically(t *testing.T) {
	s := New()
	if err := s.Insert(post("p1")); err != nil {
		t.Fatal(err)
	}
	before := s.Revision()

	updated, err := s.Mutate("p1", func(p *model.Post) {
		p.Likes++
		p.Votes = append(p.Votes, model.CommunityVote{UserID: "u1", Verdict: model.VoteReal})
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Likes != 1 || len(updated.Votes) != 1 {
		t.Errorf("returned post = likes %d votes %d, want 1/1", updated.Likes, len(updated.Votes))
	}

	stored, _ := s.Get("p1")
	if stored.Likes != 1 || len(stored.Votes) != 1 {
		t.Errorf("stored post = likes %d votes %d, want 1/1", stored.Likes, len(stored.Votes))
	}
	if s.Revision() <= before {
		t.Error("mutate did not bump revision")
	}
}

func TestMutate_UnknownID(t *testing.T) {
	s := New()
	_, err := s.Mutate("ghost", func(p *model.Post) { p.Likes++ })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMutate_IDStaysStable(t *testing.T) {
	s := New()
	if err := s.Insert(post("p1")); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Mutate("p1", func(p *model.Post) { p.ID = "hijack" }); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get("p1"); err != nil {
		t.Error("p1 must survive an id rewrite attempt")
	}
	if _, err := s.Get("hijack"); !errors.Is(err, ErrNotFound) {
		t.Error("rewritten id must not become addressable")
	}
}

func TestReplace_SwapsCollection(t *testing.T) {
	s := New()
	if err := s.Insert(post("old")); err != nil {
		t.Fatal(err)
	}

	s.Replace([]model.Post{post("n1"), post("n2")})

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if _, err := s.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Error("old post survived replace")
	}
	if _, err := s.Get("n1"); err != nil {
		t.Error("n1 missing after replace")
	}
}

func TestReplace_DropsDuplicates(t *testing.T) {
	s := New()
	a := post("dup")
	b := post("dup")
	b.CrowdScore = 99

	s.Replace([]model.Post{a, b})

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	got, _ := s.Get("dup")
	if got.CrowdScore != 50 {
		t.Errorf("crowd score = %d, want 50 (first occurrence wins)", got.CrowdScore)
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	s := New()
	p := post("p1")
	p.Votes = []model.CommunityVote{{UserID: "u1", Verdict: model.VoteReal}}
	if err := s.Insert(p); err != nil {
		t.Fatal(err)
	}

	// Mutating a read must never leak back into the store.
	all := s.All()
	all[0].CrowdScore = 0
	all[0].Votes[0].UserID = "tampered"

	got, _ := s.Get("p1")
	if got.CrowdScore != 50 {
		t.Error("mutation of All() result leaked into store")
	}
	if got.Votes[0].UserID != "u1" {
		t.Error("mutation of vote history leaked into store")
	}
}

func TestRevision_IncrementsOnMutation(t *testing.T) {
	s := New()
	r0 := s.Revision()

	if err := s.Insert(post("p1")); err != nil {
		t.Fatal(err)
	}
	r1 := s.Revision()
	if r1 <= r0 {
		t.Error("insert did not bump revision")
	}

	changed := post("p1")
	changed.Likes = 3
	if err := s.Update(changed); err != nil {
		t.Fatal(err)
	}
	if s.Revision() <= r1 {
		t.Error("update did not bump revision")
	}

	// Reads leave the revision alone.
	before := s.Revision()
	s.All()
	if _, err := s.Get("p1"); err != nil {
		t.Fatal(err)
	}
	if s.Revision() != before {
		t.Error("reads must not bump revision")
	}
}
