package model

// ContextType steers the analysis collaborator toward the right rubric.
type ContextType string

const (
	ContextNews   ContextType = "NEWS"
	ContextChat   ContextType = "CHAT"
	ContextDebate ContextType = "DEBATE"
)

// ValidContextTypes are the allowed analysis context values.
var ValidContextTypes = map[ContextType]bool{
	ContextNews:   true,
	ContextChat:   true,
	ContextDebate: true,
}

// ClaimStatus is the verification outcome for a single extracted claim.
type ClaimStatus string

const (
	ClaimSupported    ClaimStatus = "SUPPORTED"
	ClaimContradicted ClaimStatus = "CONTRADICTED"
	ClaimInsufficient ClaimStatus = "INSUFFICIENT"
)

// Claim is one factual assertion extracted from a post.
type Claim struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Status     ClaimStatus `json:"status"`
	Confidence int         `json:"confidence"`
	Reasoning  string      `json:"reasoning,omitempty"`
}

// FlagSeverity grades a manipulation flag.
type FlagSeverity string

const (
	SeverityLow    FlagSeverity = "LOW"
	SeverityMedium FlagSeverity = "MEDIUM"
	SeverityHigh   FlagSeverity = "HIGH"
)

// ManipulationFlag marks a detected rhetorical or psychological technique.
type ManipulationFlag struct {
	Type        string       `json:"type"`
	Severity    FlagSeverity `json:"severity"`
	Description string       `json:"description,omitempty"`
}

// IntentAnalysis is the collaborator's read on the author's motives.
type IntentAnalysis struct {
	PrimaryMotive  string `json:"primaryMotive"`
	EmotionalState string `json:"emotionalState"`
	HiddenMeaning  string `json:"hiddenMeaning"`
	PowerDynamics  string `json:"powerDynamics"`
}

// DeepAnalysisResult is the structured payload produced by the external
// analysis collaborator. It is attached to a post wholesale; the post's
// top-level TrustScore and Verdict are synchronized with it on attachment.
type DeepAnalysisResult struct {
	TrustScore          int                `json:"trustScore"`
	Verdict             Verdict            `json:"verdict"`
	Summary             string             `json:"summary"`
	Claims              []Claim            `json:"claims"`
	ManipulationFlags   []ManipulationFlag `json:"manipulationFlags"`
	Intent              IntentAnalysis     `json:"intent"`
	Sources             []string           `json:"sources"`
	RealityGraphSummary string             `json:"realityGraphSummary"`
}

// Clone returns a deep copy of the analysis result.
func (r DeepAnalysisResult) Clone() DeepAnalysisResult {
	c := r
	if r.Claims != nil {
		c.Claims = make([]Claim, len(r.Claims))
		copy(c.Claims, r.Claims)
	}
	if r.ManipulationFlags != nil {
		c.ManipulationFlags = make([]ManipulationFlag, len(r.ManipulationFlags))
		copy(c.ManipulationFlags, r.ManipulationFlags)
	}
	if r.Sources != nil {
		c.Sources = make([]string, len(r.Sources))
		copy(c.Sources, r.Sources)
	}
	return c
}

// StatsResponse is the API response for global feed statistics.
type StatsResponse struct {
	TotalPosts      int             `json:"totalPosts"`
	TotalVotes      int             `json:"totalVotes"`
	TotalAuthors    int             `json:"totalAuthors"`
	ConsensusVolume float64         `json:"consensusVolume"`
	Verdicts        map[Verdict]int `json:"verdicts"`
}

// AuthorResponse is the API response for per-author aggregates.
type AuthorResponse struct {
	Author        string  `json:"author"`
	AuthorRole    string  `json:"authorRole,omitempty"`
	TotalPosts    int     `json:"totalPosts"`
	AverageTrust  float64 `json:"averageTrust"`
	AverageCrowd  float64 `json:"averageCrowd"`
	FlaggedPosts  int     `json:"flaggedPosts"`
	VerifiedPosts int     `json:"verifiedPosts"`
}
