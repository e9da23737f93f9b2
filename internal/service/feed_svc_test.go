package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

// fakeIngestor serves canned trending and search results.
type fakeIngestor struct {
	trending   []model.Post
	searchHits []model.Post
	err        error
}

func (f *fakeIngestor) FetchTrendingPosts(_ context.Context) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

func (f *fakeIngestor) GlobalSearch(_ context.Context, _ string, _ model.SearchFilters) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.searchHits, nil
}

func trendingPost(id string) model.Post {
	return model.Post{
		ID:         id,
		Author:     "BBC",
		Content:    "story " + id,
		Timestamp:  time.Now().UTC(),
		TrustScore: 92,
		CrowdScore: model.NeutralScore,
		Verdict:    model.VerdictTrue,
		Type:       model.TypePost,
	}
}

func newFeedFixture(ingest Ingestor) (*FeedService, *store.FeedStore) {
	st := store.New()
	return NewFeedService(st, NewConsensusService(), ingest), st
}

func TestRefresh_SeedsStore(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{trending: []model.Post{trendingPost("t1"), trendingPost("t2")}})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if st.Len() != 2 {
		t.Errorf("store len = %d, want 2", st.Len())
	}
}

func TestRefresh_FailureKeepsCurrentFeed(t *testing.T) {
	ingest := &fakeIngestor{trending: []model.Post{trendingPost("t1")}}
	svc, st := newFeedFixture(ingest)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	ingest.err = errors.New("gateway down")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if st.Len() != 1 {
		t.Errorf("store len = %d, want 1 (collection kept on failure)", st.Len())
	}
}

func TestAddPost_NeutralDefaults(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})

	post, err := svc.AddPost(model.CreatePostRequest{Author: "archivist_zero", Content: "my take"})
	if err != nil {
		t.Fatal(err)
	}
	if post.CrowdScore != model.NeutralScore {
		t.Errorf("crowd score = %d, want 50", post.CrowdScore)
	}
	if post.Verdict != model.VerdictUnverified {
		t.Errorf("verdict = %s, want UNVERIFIED", post.Verdict)
	}
	if post.ID == "" {
		t.Error("post must get a generated id")
	}

	// Newest first.
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddPost(model.CreatePostRequest{Author: "a", Content: "b"}); err != nil {
		t.Fatal(err)
	}
	if all := st.All(); all[0].Author != "a" {
		t.Errorf("newest post not first, got author %q", all[0].Author)
	}
}

func TestSubmitVote_CanonicalPath(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})
	if err := st.Insert(trendingPost("t1")); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.SubmitVote("t1", model.VoteRequest{
		UserID:          "archivist_zero",
		UserCredibility: 88,
		Role:            string(model.RoleCitizen),
		Verdict:         string(model.VoteReal),
	})
	if err != nil {
		t.Fatal(err)
	}

	// 50 + (88/100)*10 = 58.8 -> 59
	if resp.CrowdScore != 59 {
		t.Errorf("crowd score = %d, want 59", resp.CrowdScore)
	}
	if resp.VoteWeight != 8.8 {
		t.Errorf("vote weight = %.2f, want 8.8", resp.VoteWeight)
	}
	if resp.TotalVotes != 1 {
		t.Errorf("total votes = %d, want 1", resp.TotalVotes)
	}

	// The vote must be visible through the store, not a private copy.
	stored, _ := st.Get("t1")
	if len(stored.Votes) != 1 || stored.Votes[0].UserID != "archivist_zero" {
		t.Error("vote not persisted through the store")
	}
	if stored.Votes[0].Timestamp.IsZero() {
		t.Error("vote timestamp not set")
	}
}

func TestSubmitVote_ConcurrentVotesAllRecorded(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})
	if err := st.Insert(trendingPost("t1")); err != nil {
		t.Fatal(err)
	}

	// Every concurrent vote must land in the history; the read-modify-write
	// runs inside the store's mutation so no append is lost.
	const voters = 25
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.SubmitVote("t1", model.VoteRequest{
				UserID:          fmt.Sprintf("voter-%d", n),
				UserCredibility: 100,
				Role:            string(model.RoleCitizen),
				Verdict:         string(model.VoteUnsure),
			})
			if err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	stored, err := st.Get("t1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Votes) != voters {
		t.Errorf("vote history = %d, want %d (concurrent appends lost)", len(stored.Votes), voters)
	}
	if stored.CrowdScore != model.NeutralScore {
		t.Errorf("crowd score = %d, want 50 (UNSURE votes never move it)", stored.CrowdScore)
	}
}

func TestSubmitVote_UnknownPost(t *testing.T) {
	svc, _ := newFeedFixture(&fakeIngestor{})
	_, err := svc.SubmitVote("ghost", model.VoteRequest{UserID: "u", Verdict: "REAL"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearch_FoldsResultsIntoStore(t *testing.T) {
	hits := []model.Post{trendingPost("s1"), trendingPost("s2")}
	svc, st := newFeedFixture(&fakeIngestor{searchHits: hits})

	results, err := svc.Search(context.Background(), "summit", model.SearchFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if st.Len() != 2 {
		t.Errorf("store len = %d, want 2 (search results folded in)", st.Len())
	}

	// A vote on a search result must survive the next identical search.
	if _, err := svc.SubmitVote("s1", model.VoteRequest{
		UserID: "u1", UserCredibility: 100, Role: string(model.RoleExpert), Verdict: string(model.VoteReal),
	}); err != nil {
		t.Fatal(err)
	}

	again, err := svc.Search(context.Background(), "summit", model.SearchFilters{})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range again {
		if p.ID == "s1" {
			if len(p.Votes) != 1 || p.CrowdScore != 60 {
				t.Errorf("s1 lost its vote on re-search: votes=%d score=%d", len(p.Votes), p.CrowdScore)
			}
		}
	}
}

func TestSearch_FailureYieldsEmptyList(t *testing.T) {
	svc, _ := newFeedFixture(&fakeIngestor{err: errors.New("gateway down")})

	results, err := svc.Search(context.Background(), "anything", model.SearchFilters{})
	if err == nil {
		t.Fatal("expected error")
	}
	if results == nil || len(results) != 0 {
		t.Errorf("results = %v, want empty non-nil list", results)
	}
}

func TestLike_IndependentOfScoring(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})
	if err := st.Insert(trendingPost("t1")); err != nil {
		t.Fatal(err)
	}

	post, err := svc.Like("t1")
	if err != nil {
		t.Fatal(err)
	}
	if post.Likes != 1 {
		t.Errorf("likes = %d, want 1", post.Likes)
	}
	if post.CrowdScore != model.NeutralScore || post.TrustScore != 92 {
		t.Error("like must not touch trust or crowd scores")
	}
}

func TestLike_ConcurrentLikesAllCounted(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})
	if err := st.Insert(trendingPost("t1")); err != nil {
		t.Fatal(err)
	}

	const likes = 25
	var wg sync.WaitGroup
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Like("t1"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	stored, err := st.Get("t1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Likes != likes {
		t.Errorf("likes = %d, want %d (concurrent increments lost)", stored.Likes, likes)
	}
}

func TestFeed_ProjectsThroughStore(t *testing.T) {
	svc, st := newFeedFixture(&fakeIngestor{})
	fake := trendingPost("f1")
	fake.Verdict = model.VerdictFake
	fake.TrustScore = 10
	if err := st.Insert(trendingPost("t1")); err != nil {
		t.Fatal(err)
	}
	if err := st.Insert(fake); err != nil {
		t.Fatal(err)
	}

	got := svc.Feed(string(model.VerdictFake), model.SortLatest)
	if len(got) != 1 || got[0].ID != "f1" {
		t.Errorf("filtered feed = %v, want only f1", got)
	}
}
