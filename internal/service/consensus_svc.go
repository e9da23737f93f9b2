package service

import (
	"math"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

// MaxVoteImpact is the largest crowd-score swing a single vote can cause.
// A credibility-100 voter moves the score by the full amount, a
// credibility-0 voter by nothing.
const MaxVoteImpact = 10.0

// ConsensusService folds individual community votes into a post's running
// crowd score. It is the single scoring authority: every vote-submission
// path goes through ApplyVote so no call site can embed its own formula.
type ConsensusService struct{}

func NewConsensusService() *ConsensusService {
	return &ConsensusService{}
}

// VoteWeight returns the impact magnitude of a vote:
//
//	weight = (credibility / 100) * MaxVoteImpact
//
// Out-of-range credibility is clamped to [0,100] rather than rejected.
func (s *ConsensusService) VoteWeight(credibility int) float64 {
	c := clampInt(credibility, 0, 100)
	return float64(c) / 100.0 * MaxVoteImpact
}

// ScoreAfterVote computes the new crowd score after one vote. REAL votes
// push the score up by the vote weight, FAKE votes push it down, UNSURE
// votes leave it unchanged (they still count toward consensus volume).
// The result is clamped to [0,100] and rounded to the nearest integer.
func (s *ConsensusService) ScoreAfterVote(current int, vote model.CommunityVote) int {
	weight := s.VoteWeight(vote.UserCredibility)

	var impact float64
	switch vote.Verdict {
	case model.VoteReal:
		impact = weight
	case model.VoteFake:
		impact = -weight
	case model.VoteUnsure:
		impact = 0
	}

	next := math.Min(100, math.Max(0, float64(current)+impact))
	return int(math.Round(next))
}

// ApplyVote appends the vote to the post's history and updates its crowd
// score. The vote is recorded unconditionally, even when it does not move
// the score.
func (s *ConsensusService) ApplyVote(post model.Post, vote model.CommunityVote) model.Post {
	vote.UserCredibility = clampInt(vote.UserCredibility, 0, 100)
	post.CrowdScore = s.ScoreAfterVote(post.CrowdScore, vote)
	post.Votes = append(post.Votes, vote)
	return post
}

// ConsensusVolume is the total participation weight behind a post's crowd
// score: the sum of every vote's weight, UNSURE included. UNSURE votes never
// move the score but they do register conviction-free participation here.
func (s *ConsensusService) ConsensusVolume(votes []model.CommunityVote) float64 {
	var total float64
	for _, v := range votes {
		total += s.VoteWeight(v.UserCredibility)
	}
	return total
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
