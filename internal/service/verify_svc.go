package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

// Analyzer is the slice of the oracle client the verification path needs.
type Analyzer interface {
	AnalyzeTextDeeply(ctx context.Context, text string, contextType model.ContextType) (model.DeepAnalysisResult, error)
}

// ErrAlreadyVerified is returned when a post already has verification details
// and the caller did not force a re-run. Viewing a post never silently
// re-triggers analysis.
var ErrAlreadyVerified = errors.New("post already verified")

// VerifyService merges externally produced analysis results into posts.
// Attachment overwrites the previous payload wholesale and keeps the post's
// top-level trust score and verdict in lockstep with it.
type VerifyService struct {
	store    *store.FeedStore
	analyzer Analyzer
	cache    *CacheService

	mu       sync.Mutex
	inflight map[string]uint64 // post id -> latest request token
}

func NewVerifyService(st *store.FeedStore, analyzer Analyzer, cache *CacheService) *VerifyService {
	return &VerifyService{
		store:    st,
		analyzer: analyzer,
		cache:    cache,
		inflight: make(map[string]uint64),
	}
}

// Attach overwrites the post's verification details with the given result
// and synchronizes the top-level summary fields. It is idempotent:
// attaching the same result twice yields the same post state.
func Attach(post model.Post, result model.DeepAnalysisResult) model.Post {
	details := result.Clone()
	post.VerificationDetails = &details
	post.TrustScore = details.TrustScore
	post.Verdict = details.Verdict
	return post
}

// DefaultAnalysis is the fallback attached when the collaborator fails or
// times out: neutral score, UNVERIFIED verdict, empty collections. The UI
// gets an explicit degraded state instead of hanging in "loading".
func DefaultAnalysis() model.DeepAnalysisResult {
	return model.DeepAnalysisResult{
		TrustScore: model.NeutralScore,
		Verdict:    model.VerdictUnverified,
		Summary:    "Analysis unavailable.",
		Claims:     []model.Claim{},
		ManipulationFlags: []model.ManipulationFlag{},
		Intent: model.IntentAnalysis{
			PrimaryMotive:  "Unknown",
			EmotionalState: "Neutral",
			HiddenMeaning:  "None detected",
			PowerDynamics:  "Balanced",
		},
		Sources:             []string{},
		RealityGraphSummary: "Analysis unavailable.",
	}
}

// Verify runs the deep analysis for a post and attaches the result.
// Triggering policy: it runs when the post has no verification details yet,
// or when force is set (manual re-verify). Concurrent requests on the same
// post race by design; a per-post token discards stale responses so the
// last *started* request wins rather than the last to resolve.
//
// The returned bool reports whether the result is the degraded fallback.
func (s *VerifyService) Verify(ctx context.Context, postID string, contextType model.ContextType, force bool) (model.Post, bool, error) {
	post, err := s.store.Get(postID)
	if err != nil {
		return model.Post{}, false, err
	}

	if post.VerificationDetails != nil && !force {
		return post, false, ErrAlreadyVerified
	}

	if !model.ValidContextTypes[contextType] {
		contextType = model.ContextNews
	}

	token := s.begin(postID)

	if force && s.cache != nil {
		if err := s.cache.InvalidateAnalysis(ctx, postID); err != nil {
			log.Printf("verify: cache invalidate error for %s: %v", postID, err)
		}
	}

	result, degraded := s.obtainAnalysis(ctx, post, contextType, force)

	if !s.current(postID, token) {
		// A newer verification started while we waited; drop this response.
		fresh, err := s.store.Get(postID)
		return fresh, degraded, err
	}

	// Attach onto the current record, not the pre-analysis snapshot: votes
	// and likes that landed while the analyzer ran must survive.
	updated, err := s.store.Mutate(postID, func(p *model.Post) {
		*p = Attach(*p, result)
	})
	if err != nil {
		return model.Post{}, degraded, err
	}

	if s.cache != nil && !degraded {
		if err := s.cache.SetAnalysis(ctx, postID, result); err != nil {
			log.Printf("verify: cache set error for %s: %v", postID, err)
		}
	}

	return updated, degraded, nil
}

// obtainAnalysis tries the cache (unless forced), then the collaborator,
// then falls back to the neutral default.
func (s *VerifyService) obtainAnalysis(ctx context.Context, post model.Post, contextType model.ContextType, force bool) (model.DeepAnalysisResult, bool) {
	if !force && s.cache != nil {
		if cached, err := s.cache.GetAnalysis(ctx, post.ID); err != nil {
			log.Printf("verify: cache get error for %s: %v", post.ID, err)
		} else if cached != nil {
			return *cached, false
		}
	}

	result, err := s.analyzer.AnalyzeTextDeeply(ctx, post.Content, contextType)
	if err != nil {
		log.Printf("verify: analysis failed for %s: %v", post.ID, err)
		return DefaultAnalysis(), true
	}
	return result, false
}

func (s *VerifyService) begin(postID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[postID]++
	return s.inflight[postID]
}

func (s *VerifyService) current(postID string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[postID] == token
}
