package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

// AuthorService derives per-author aggregates from the feed store: post
// volume, average trust, and how many of an author's posts have been flagged
// as fabricated or misleading.
type AuthorService struct {
	store *store.FeedStore
	cache *CacheService
}

func NewAuthorService(st *store.FeedStore, cache *CacheService) *AuthorService {
	return &AuthorService{store: st, cache: cache}
}

// Lookup returns aggregates for the given author, or store.ErrNotFound if
// the author has no posts in the feed.
func (s *AuthorService) Lookup(ctx context.Context, author string) (*model.AuthorResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetAuthor(ctx, author); err != nil {
			log.Printf("author: cache get error for %q: %v", author, err)
		} else if data != nil {
			var resp model.AuthorResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp := model.AuthorResponse{Author: author}
	var trustSum, crowdSum int

	for _, post := range s.store.All() {
		if post.Author != author {
			continue
		}
		resp.TotalPosts++
		trustSum += post.TrustScore
		crowdSum += post.CrowdScore
		if resp.AuthorRole == "" {
			resp.AuthorRole = post.AuthorRole
		}
		switch post.Verdict {
		case model.VerdictFake, model.VerdictMisleading:
			resp.FlaggedPosts++
		case model.VerdictTrue, model.VerdictMostlyTrue:
			resp.VerifiedPosts++
		}
	}

	if resp.TotalPosts == 0 {
		return nil, store.ErrNotFound
	}

	resp.AverageTrust = float64(trustSum) / float64(resp.TotalPosts)
	resp.AverageCrowd = float64(crowdSum) / float64(resp.TotalPosts)

	if s.cache != nil {
		if err := s.cache.SetAuthor(ctx, author, resp); err != nil {
			log.Printf("author: cache set error for %q: %v", author, err)
		}
	}

	return &resp, nil
}

// Stats computes global feed statistics: totals, the verdict histogram, and
// the summed consensus volume across every post.
func (s *AuthorService) Stats(consensus *ConsensusService) model.StatsResponse {
	stats := model.StatsResponse{
		Verdicts: make(map[model.Verdict]int),
	}

	authors := make(map[string]struct{})
	for _, post := range s.store.All() {
		stats.TotalPosts++
		stats.TotalVotes += len(post.Votes)
		stats.Verdicts[post.Verdict]++
		stats.ConsensusVolume += consensus.ConsensusVolume(post.Votes)
		authors[post.Author] = struct{}{}
	}
	stats.TotalAuthors = len(authors)

	return stats
}
