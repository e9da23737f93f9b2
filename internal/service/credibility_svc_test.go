package service

import (
	"math"
	"testing"
	"time"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

func TestAgeFactor(t *testing.T) {
	svc := NewCredibilityService(store.New())

	tests := []struct {
		name      string
		firstVote time.Time
		want      float64
	}{
		{"never voted", time.Time{}, 0},
		{"30 days in", time.Now().Add(-30 * 24 * time.Hour), 0.5},
		{"60 days caps out", time.Now().Add(-60 * 24 * time.Hour), 1.0},
		{"veteran stays capped", time.Now().Add(-400 * 24 * time.Hour), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.AgeFactor(tt.firstVote)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("AgeFactor = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestAccuracyFactor(t *testing.T) {
	svc := NewCredibilityService(store.New())

	// Fewer than 10 settled votes uses the neutral default.
	if got := svc.AccuracyFactor(1.0, 9); got != 0.5 {
		t.Errorf("AccuracyFactor(1.0, 9) = %.2f, want default 0.5", got)
	}
	if got := svc.AccuracyFactor(0.8, 10); got != 0.8 {
		t.Errorf("AccuracyFactor(0.8, 10) = %.2f, want 0.8", got)
	}
	if got := svc.AccuracyFactor(0.0, 50); got != 0.0 {
		t.Errorf("AccuracyFactor(0.0, 50) = %.2f, want 0.0", got)
	}
}

func TestVolumeFactor(t *testing.T) {
	svc := NewCredibilityService(store.New())

	if got := svc.VolumeFactor(0); got != 0 {
		t.Errorf("VolumeFactor(0) = %.2f, want 0", got)
	}
	if got := svc.VolumeFactor(50); got != 0.5 {
		t.Errorf("VolumeFactor(50) = %.2f, want 0.5", got)
	}
	if got := svc.VolumeFactor(250); got != 1.0 {
		t.Errorf("VolumeFactor(250) = %.2f, want capped 1.0", got)
	}
}

func TestVoteAgreesWithVerdict(t *testing.T) {
	tests := []struct {
		name        string
		vote        model.VoteVerdict
		verdict     model.Verdict
		wantAgrees  bool
		wantSettled bool
	}{
		{"real on true", model.VoteReal, model.VerdictTrue, true, true},
		{"real on mostly true", model.VoteReal, model.VerdictMostlyTrue, true, true},
		{"real on partially true", model.VoteReal, model.VerdictPartiallyTrue, true, true},
		{"real on fake", model.VoteReal, model.VerdictFake, false, true},
		{"fake on fake", model.VoteFake, model.VerdictFake, true, true},
		{"fake on misleading", model.VoteFake, model.VerdictMisleading, true, true},
		{"fake on true", model.VoteFake, model.VerdictTrue, false, true},
		{"unsure never settled", model.VoteUnsure, model.VerdictTrue, false, false},
		{"unverified never settled", model.VoteReal, model.VerdictUnverified, false, false},
		{"satire never settled", model.VoteReal, model.VerdictSatire, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agrees, settled := voteAgreesWithVerdict(tt.vote, tt.verdict)
			if agrees != tt.wantAgrees || settled != tt.wantSettled {
				t.Errorf("voteAgreesWithVerdict(%s, %s) = (%v, %v), want (%v, %v)",
					tt.vote, tt.verdict, agrees, settled, tt.wantAgrees, tt.wantSettled)
			}
		})
	}
}

func TestStanding_WalksFeed(t *testing.T) {
	st := store.New()
	firstVote := time.Now().Add(-60 * 24 * time.Hour)

	// 12 settled posts: u1 agrees on 9 and misses 3.
	for i := 0; i < 12; i++ {
		verdict := model.VerdictTrue
		vote := model.VoteReal
		if i >= 9 {
			vote = model.VoteFake // wrong call
		}
		p := model.Post{
			ID:        "p" + string(rune('a'+i)),
			Author:    "AP",
			Timestamp: firstVote,
			Verdict:   verdict,
			Votes: []model.CommunityVote{
				{UserID: "u1", Verdict: vote, Timestamp: firstVote.Add(time.Duration(i) * time.Hour)},
				{UserID: "other", Verdict: model.VoteUnsure, Timestamp: firstVote},
			},
		}
		if err := st.Insert(p); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewCredibilityService(st)
	standing := svc.Standing("u1")

	if standing.TotalVotes != 12 {
		t.Errorf("total votes = %d, want 12", standing.TotalVotes)
	}
	if standing.SettledVotes != 12 || standing.AccurateVotes != 9 {
		t.Errorf("settled/accurate = %d/%d, want 12/9", standing.SettledVotes, standing.AccurateVotes)
	}
	if math.Abs(standing.AccuracyRate-0.75) > 0.001 {
		t.Errorf("accuracy rate = %.3f, want 0.75", standing.AccuracyRate)
	}
	if !standing.FirstVote.Equal(firstVote) {
		t.Errorf("first vote = %v, want %v", standing.FirstVote, firstVote)
	}

	// age 1.0*0.30 + accuracy 0.75*0.50 + volume 0.12*0.20 = 0.699 -> 70
	if standing.Credibility != 70 {
		t.Errorf("credibility = %d, want 70", standing.Credibility)
	}
}

func TestStanding_UnknownUser(t *testing.T) {
	svc := NewCredibilityService(store.New())
	standing := svc.Standing("nobody")

	if standing.TotalVotes != 0 {
		t.Errorf("total votes = %d, want 0", standing.TotalVotes)
	}
	// age 0*0.30 + default accuracy 0.5*0.50 + volume 0*0.20 = 0.25 -> 25
	if standing.Credibility != 25 {
		t.Errorf("credibility = %d, want 25 (neutral default accuracy only)", standing.Credibility)
	}
}
