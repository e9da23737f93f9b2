package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

// Ingestor is the slice of the oracle client the feed path needs.
type Ingestor interface {
	FetchTrendingPosts(ctx context.Context) ([]model.Post, error)
	GlobalSearch(ctx context.Context, query string, filters model.SearchFilters) ([]model.Post, error)
}

// FeedService orchestrates the feed store, the consensus scorer, and the
// ingestion collaborator. Every mutation flows through the store; no caller
// holds a divergent copy of the collection.
type FeedService struct {
	store      *store.FeedStore
	consensus  *ConsensusService
	ingest     Ingestor
	refreshing atomic.Bool
}

func NewFeedService(st *store.FeedStore, consensus *ConsensusService, ingest Ingestor) *FeedService {
	return &FeedService{
		store:     st,
		consensus: consensus,
		ingest:    ingest,
	}
}

// Feed returns the projected view of the store: filtered by verdict, then
// stable-sorted by the given key.
func (s *FeedService) Feed(filterVerdict string, key model.SortKey) []model.Post {
	return Project(s.store.All(), filterVerdict, key)
}

// Refreshing reports whether a feed refresh is currently in flight.
func (s *FeedService) Refreshing() bool {
	return s.refreshing.Load()
}

// Refresh replaces the collection with a freshly ingested trending set. On
// collaborator failure the current collection is kept and the error is
// returned so callers can surface a degraded state instead of a blank feed.
func (s *FeedService) Refresh(ctx context.Context) error {
	s.refreshing.Store(true)
	defer s.refreshing.Store(false)

	posts, err := s.ingest.FetchTrendingPosts(ctx)
	if err != nil {
		return fmt.Errorf("refresh feed: %w", err)
	}

	s.store.Replace(posts)
	return nil
}

// AddPost publishes a user-authored post: fresh id, neutral scores,
// UNVERIFIED verdict, empty vote history.
func (s *FeedService) AddPost(req model.CreatePostRequest) (model.Post, error) {
	post := model.Post{
		ID:         "user-" + uuid.NewString(),
		Author:     req.Author,
		AuthorRole: req.AuthorRole,
		Content:    req.Content,
		Image:      req.Image,
		Timestamp:  time.Now().UTC(),
		TrustScore: model.NeutralScore,
		CrowdScore: model.NeutralScore,
		Verdict:    model.VerdictUnverified,
		Type:       model.TypePost,
	}
	if t := model.PostType(req.Type); t == model.TypeReel || t == model.TypeGeneratedReel {
		post.Type = t
	}

	if err := s.store.Insert(post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// SubmitVote routes a vote through the one canonical scoring path: clamp
// credibility, compute the weighted impact, append to history, write back.
// Scoring runs inside the store's mutation so concurrent votes on the same
// post all land in the history.
func (s *FeedService) SubmitVote(postID string, req model.VoteRequest) (*model.VoteResponse, error) {
	vote := model.CommunityVote{
		UserID:          req.UserID,
		UserCredibility: clampInt(req.UserCredibility, 0, 100),
		Role:            model.CommunityRole(req.Role),
		Verdict:         model.VoteVerdict(req.Verdict),
		Reason:          req.Reason,
		Timestamp:       time.Now().UTC(),
	}

	updated, err := s.store.Mutate(postID, func(p *model.Post) {
		*p = s.consensus.ApplyVote(*p, vote)
	})
	if err != nil {
		return nil, err
	}

	return &model.VoteResponse{
		Success:         true,
		CrowdScore:      updated.CrowdScore,
		VoteWeight:      s.consensus.VoteWeight(vote.UserCredibility),
		TotalVotes:      len(updated.Votes),
		ConsensusVolume: s.consensus.ConsensusVolume(updated.Votes),
	}, nil
}

// Like bumps a post's like counter. Engagement counters are independent of
// trust and crowd scoring.
func (s *FeedService) Like(postID string) (model.Post, error) {
	return s.store.Mutate(postID, func(p *model.Post) {
		p.Likes++
	})
}

// Search asks the collaborator for matching posts and folds new results into
// the store, so votes and verifications on search results go through the
// same single source of truth as the main feed. On failure it returns an
// empty list; the caller shows an explicit empty state.
func (s *FeedService) Search(ctx context.Context, query string, filters model.SearchFilters) ([]model.Post, error) {
	results, err := s.ingest.GlobalSearch(ctx, query, filters)
	if err != nil {
		return []model.Post{}, fmt.Errorf("search: %w", err)
	}

	for i := range results {
		if err := s.store.Insert(results[i]); err != nil {
			// Already known: serve the store's copy so any votes cast on it
			// since the last search stay visible.
			if existing, getErr := s.store.Get(results[i].ID); getErr == nil {
				results[i] = existing
			}
		}
	}
	return results, nil
}
