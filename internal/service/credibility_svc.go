package service

import (
	"math"
	"time"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

const (
	ageWeight      = 0.30
	accuracyWeight = 0.50
	volumeWeight   = 0.20

	// Full age factor after 60 days of participation
	ageDaysMax = 60.0

	// Default accuracy for users with fewer than 10 settled votes
	defaultAccuracy     = 0.5
	minVotesForAccuracy = 10

	// Full volume factor at 100 votes
	volumeVotesMax = 100.0
)

// UserStanding summarizes one user's voting record across the feed.
type UserStanding struct {
	UserID        string    `json:"userId"`
	Credibility   int       `json:"credibility"`
	TotalVotes    int       `json:"totalVotes"`
	SettledVotes  int       `json:"settledVotes"`
	AccurateVotes int       `json:"accurateVotes"`
	AccuracyRate  float64   `json:"accuracyRate"`
	FirstVote     time.Time `json:"firstVote"`
}

// CredibilityService derives a user's credibility (0-100) from their voting
// record: how long they have participated, how often their verdicts agreed
// with a post's settled classification, and how much they vote. The result
// is what gets snapshotted onto each vote they cast.
type CredibilityService struct {
	store *store.FeedStore
}

func NewCredibilityService(st *store.FeedStore) *CredibilityService {
	return &CredibilityService{store: st}
}

// Standing walks the feed and computes the user's current standing.
func (s *CredibilityService) Standing(userID string) UserStanding {
	standing := UserStanding{UserID: userID}

	for _, post := range s.store.All() {
		for _, vote := range post.Votes {
			if vote.UserID != userID {
				continue
			}
			standing.TotalVotes++
			if standing.FirstVote.IsZero() || vote.Timestamp.Before(standing.FirstVote) {
				standing.FirstVote = vote.Timestamp
			}
			if agreement, settled := voteAgreesWithVerdict(vote.Verdict, post.Verdict); settled {
				standing.SettledVotes++
				if agreement {
					standing.AccurateVotes++
				}
			}
		}
	}

	if standing.SettledVotes > 0 {
		standing.AccuracyRate = float64(standing.AccurateVotes) / float64(standing.SettledVotes)
	}
	standing.Credibility = s.score(standing)
	return standing
}

// score combines the three factors:
//
//	credibility = (age_factor * 0.30) + (accuracy_factor * 0.50) + (volume_factor * 0.20)
//
// scaled to 0-100.
func (s *CredibilityService) score(st UserStanding) int {
	age := s.AgeFactor(st.FirstVote)
	accuracy := s.AccuracyFactor(st.AccuracyRate, st.SettledVotes)
	volume := s.VolumeFactor(st.TotalVotes)

	score := (age * ageWeight) + (accuracy * accuracyWeight) + (volume * volumeWeight)
	return int(math.Round(math.Min(score, 1.0) * 100))
}

// AgeFactor returns a value between 0.0 and 1.0 based on how long the user
// has been voting. Full weight (1.0) after 60 days.
func (s *CredibilityService) AgeFactor(firstVote time.Time) float64 {
	if firstVote.IsZero() {
		return 0
	}
	days := time.Since(firstVote).Hours() / 24
	return math.Min(days/ageDaysMax, 1.0)
}

// AccuracyFactor returns the accuracy rate for users with 10+ settled votes,
// or the default 0.5 for users with fewer.
func (s *CredibilityService) AccuracyFactor(accuracyRate float64, settledVotes int) float64 {
	if settledVotes < minVotesForAccuracy {
		return defaultAccuracy
	}
	return accuracyRate
}

// VolumeFactor returns a value between 0.0 and 1.0 based on total votes.
// Full weight (1.0) at 100+ votes.
func (s *CredibilityService) VolumeFactor(totalVotes int) float64 {
	return math.Min(float64(totalVotes)/volumeVotesMax, 1.0)
}

// voteAgreesWithVerdict maps a REAL/FAKE vote onto a post's classification.
// UNSURE votes and UNVERIFIED posts are not settled, so they never count for
// or against accuracy.
func voteAgreesWithVerdict(vote model.VoteVerdict, verdict model.Verdict) (agrees, settled bool) {
	if vote == model.VoteUnsure || verdict == model.VerdictUnverified {
		return false, false
	}
	switch verdict {
	case model.VerdictTrue, model.VerdictMostlyTrue, model.VerdictPartiallyTrue:
		return vote == model.VoteReal, true
	case model.VerdictFake, model.VerdictMisleading:
		return vote == model.VoteFake, true
	case model.VerdictSatire:
		// Satire is neither real nor fake misinformation.
		return false, false
	}
	return false, false
}
