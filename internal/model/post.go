package model

import "time"

// Verdict is the discrete classification label summarizing a post's veracity.
type Verdict string

const (
	VerdictTrue          Verdict = "TRUE"
	VerdictMostlyTrue    Verdict = "MOSTLY_TRUE"
	VerdictPartiallyTrue Verdict = "PARTIALLY_TRUE"
	VerdictMisleading    Verdict = "MISLEADING"
	VerdictFake          Verdict = "FAKE"
	VerdictUnverified    Verdict = "UNVERIFIED"
	VerdictSatire        Verdict = "SATIRE"
)

// ValidVerdicts are the allowed post verdict values.
var ValidVerdicts = map[Verdict]bool{
	VerdictTrue:          true,
	VerdictMostlyTrue:    true,
	VerdictPartiallyTrue: true,
	VerdictMisleading:    true,
	VerdictFake:          true,
	VerdictUnverified:    true,
	VerdictSatire:        true,
}

// SortKey selects the comparator for a projected feed view.
type SortKey string

const (
	SortLatest    SortKey = "LATEST"
	SortTrustHigh SortKey = "TRUST_HIGH"
	SortTrustLow  SortKey = "TRUST_LOW"
	SortCrowdHigh SortKey = "CROWD_HIGH"
)

// ValidSortKeys are the allowed sort key values.
var ValidSortKeys = map[SortKey]bool{
	SortLatest:    true,
	SortTrustHigh: true,
	SortTrustLow:  true,
	SortCrowdHigh: true,
}

// FilterAll disables verdict filtering in feed projections.
const FilterAll = "ALL"

// PostType distinguishes regular posts from short-form reels.
type PostType string

const (
	TypePost          PostType = "POST"
	TypeReel          PostType = "REEL"
	TypeGeneratedReel PostType = "GENERATED_REEL"
)

// NeutralScore is the starting crowd score for a post with no votes,
// and the fallback trust score when analysis data is missing.
const NeutralScore = 50

// Post is the central feed entity. TrustScore is AI-derived and mutated only
// by verification attachment; CrowdScore is community-derived and mutated
// only by the consensus scorer. Both stay within [0,100].
type Post struct {
	ID                  string              `json:"id"`
	Author              string              `json:"author"`
	AuthorRole          string              `json:"authorRole,omitempty"`
	Content             string              `json:"content"`
	Image               string              `json:"image,omitempty"`
	Timestamp           time.Time           `json:"timestamp"`
	TrustScore          int                 `json:"trustScore"`
	CrowdScore          int                 `json:"crowdScore"`
	Verdict             Verdict             `json:"verdict"`
	Type                PostType            `json:"type"`
	VerificationDetails *DeepAnalysisResult `json:"verificationDetails,omitempty"`
	Votes               []CommunityVote     `json:"votes,omitempty"`
	Likes               int                 `json:"likes"`
	Comments            int                 `json:"comments"`
}

// Clone returns a deep copy of the post so callers can hand posts out of the
// store without aliasing its vote history or analysis payload.
func (p Post) Clone() Post {
	c := p
	if p.Votes != nil {
		c.Votes = make([]CommunityVote, len(p.Votes))
		copy(c.Votes, p.Votes)
	}
	if p.VerificationDetails != nil {
		d := p.VerificationDetails.Clone()
		c.VerificationDetails = &d
	}
	return c
}

// CreatePostRequest is the API request body for publishing a user-authored post.
type CreatePostRequest struct {
	Author     string `json:"author"`
	AuthorRole string `json:"authorRole,omitempty"`
	Content    string `json:"content"`
	Image      string `json:"image,omitempty"`
	Type       string `json:"type,omitempty"`
}

// SearchFilters narrow a global search. Zero values mean "ALL".
type SearchFilters struct {
	DateRange  string `json:"dateRange,omitempty"`
	AuthorRole string `json:"authorRole,omitempty"`
	Verdict    string `json:"verdict,omitempty"`
}

// SearchRequest is the API request body for a global search.
type SearchRequest struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
}
