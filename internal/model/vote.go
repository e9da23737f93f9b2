package model

import "time"

// CommunityRole identifies the capacity a voter claims when casting a verdict.
type CommunityRole string

const (
	RoleJournalist CommunityRole = "Journalist"
	RoleExpert     CommunityRole = "Expert"
	RoleEyewitness CommunityRole = "Eyewitness"
	RoleCitizen    CommunityRole = "Citizen"
)

// ValidRoles are the allowed community role values.
var ValidRoles = map[CommunityRole]bool{
	RoleJournalist: true,
	RoleExpert:     true,
	RoleEyewitness: true,
	RoleCitizen:    true,
}

// VoteVerdict is a single voter's judgment on a post.
type VoteVerdict string

const (
	VoteReal   VoteVerdict = "REAL"
	VoteFake   VoteVerdict = "FAKE"
	VoteUnsure VoteVerdict = "UNSURE"
)

// ValidVoteVerdicts are the allowed vote verdict values.
var ValidVoteVerdicts = map[VoteVerdict]bool{
	VoteReal:   true,
	VoteFake:   true,
	VoteUnsure: true,
}

// CommunityVote is one community member's judgment on one post. It is
// immutable once cast. UserCredibility is a snapshot of the voter's score at
// vote time so historical votes stay reproducible if the voter's standing
// later changes.
type CommunityVote struct {
	UserID          string        `json:"userId"`
	UserCredibility int           `json:"userCredibility"`
	Role            CommunityRole `json:"role"`
	Verdict         VoteVerdict   `json:"verdict"`
	Reason          string        `json:"reason,omitempty"`
	Timestamp       time.Time     `json:"timestamp"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	UserID          string `json:"userId"`
	UserCredibility int    `json:"userCredibility"`
	Role            string `json:"role"`
	Verdict         string `json:"verdict"`
	Reason          string `json:"reason,omitempty"`
}

// VoteResponse is the API response after casting a vote.
type VoteResponse struct {
	Success         bool    `json:"success"`
	CrowdScore      int     `json:"crowdScore"`
	VoteWeight      float64 `json:"voteWeight"`
	TotalVotes      int     `json:"totalVotes"`
	ConsensusVolume float64 `json:"consensusVolume"`
}
