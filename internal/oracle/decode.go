package oracle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

// rawPost mirrors the loosely-typed post objects the gateway returns.
// Pointer fields distinguish "absent" from zero so defaults only apply when
// the collaborator actually dropped a field.
type rawPost struct {
	ID                  string       `json:"id"`
	Author              string       `json:"author"`
	AuthorRole          string       `json:"authorRole"`
	Content             string       `json:"content"`
	Image               string       `json:"image"`
	Timestamp           string       `json:"timestamp"`
	TrustScore          *int         `json:"trustScore"`
	Verdict             string       `json:"verdict"`
	Type                string       `json:"type"`
	Likes               int          `json:"likes"`
	Comments            int          `json:"comments"`
	VerificationSummary string       `json:"verificationSummary"`
	SourceURL           string       `json:"sourceUrl"`
	Analysis            *rawAnalysis `json:"verificationDetails"`
}

// rawAnalysis mirrors the gateway's analysis payload.
type rawAnalysis struct {
	TrustScore          *int                     `json:"trustScore"`
	Verdict             string                   `json:"verdict"`
	Summary             string                   `json:"summary"`
	Claims              []model.Claim            `json:"claims"`
	ManipulationFlags   []model.ManipulationFlag `json:"manipulationFlags"`
	Intent              *model.IntentAnalysis    `json:"intent"`
	Sources             []string                 `json:"sources"`
	RealityGraphSummary string                   `json:"realityGraphSummary"`
}

// normalizeAnalysis validates an analysis payload at the boundary, filling
// neutral defaults for anything absent: trustScore 50, verdict UNVERIFIED,
// empty (non-nil) collections.
func normalizeAnalysis(raw rawAnalysis) model.DeepAnalysisResult {
	result := model.DeepAnalysisResult{
		TrustScore:          model.NeutralScore,
		Verdict:             model.VerdictUnverified,
		Summary:             raw.Summary,
		Claims:              raw.Claims,
		ManipulationFlags:   raw.ManipulationFlags,
		Sources:             raw.Sources,
		RealityGraphSummary: raw.RealityGraphSummary,
	}

	if raw.TrustScore != nil {
		result.TrustScore = clampScore(*raw.TrustScore)
	}
	if v := model.Verdict(raw.Verdict); model.ValidVerdicts[v] {
		result.Verdict = v
	}
	if raw.Intent != nil {
		result.Intent = *raw.Intent
	} else {
		result.Intent = neutralIntent()
	}
	if result.Claims == nil {
		result.Claims = []model.Claim{}
	}
	if result.ManipulationFlags == nil {
		result.ManipulationFlags = []model.ManipulationFlag{}
	}
	if result.Sources == nil {
		result.Sources = []string{}
	}
	if result.RealityGraphSummary == "" {
		result.RealityGraphSummary = result.Summary
	}
	return result
}

// normalizePosts converts raw gateway posts into store-ready posts: fresh
// unique ids where missing, neutral crowd score, empty vote history,
// clamped trust score, validated verdict.
func normalizePosts(raw []rawPost, idPrefix string) []model.Post {
	posts := make([]model.Post, 0, len(raw))
	for i, r := range raw {
		p := model.Post{
			ID:         r.ID,
			Author:     r.Author,
			AuthorRole: r.AuthorRole,
			Content:    r.Content,
			Image:      r.Image,
			Timestamp:  parseTimestamp(r.Timestamp),
			TrustScore: model.NeutralScore,
			CrowdScore: model.NeutralScore,
			Verdict:    model.VerdictUnverified,
			Type:       model.TypePost,
			Likes:      r.Likes,
			Comments:   r.Comments,
		}

		if p.ID == "" {
			p.ID = fmt.Sprintf("%s-%s-%d", idPrefix, uuid.NewString(), i)
		}
		if p.Author == "" {
			p.Author = "Unknown Source"
		}
		if p.AuthorRole == "" {
			p.AuthorRole = string(model.RoleCitizen)
		}
		if r.TrustScore != nil {
			p.TrustScore = clampScore(*r.TrustScore)
		}
		if v := model.Verdict(r.Verdict); model.ValidVerdicts[v] {
			p.Verdict = v
		}
		if t := model.PostType(r.Type); t == model.TypeReel || t == model.TypeGeneratedReel {
			p.Type = t
		}

		if r.Analysis != nil {
			details := normalizeAnalysis(*r.Analysis)
			p.VerificationDetails = &details
			p.TrustScore = details.TrustScore
			p.Verdict = details.Verdict
		} else if r.VerificationSummary != "" {
			// Search results carry a one-line credibility summary instead of
			// a full analysis; wrap it so the details panel has something.
			details := normalizeAnalysis(rawAnalysis{
				TrustScore: &p.TrustScore,
				Verdict:    string(p.Verdict),
				Summary:    r.VerificationSummary,
			})
			p.VerificationDetails = &details
		}

		posts = append(posts, p)
	}
	return posts
}

func neutralIntent() model.IntentAnalysis {
	return model.IntentAnalysis{
		PrimaryMotive:  "Unknown",
		EmotionalState: "Neutral",
		HiddenMeaning:  "None detected",
		PowerDynamics:  "Balanced",
	}
}

func parseTimestamp(s string) time.Time {
	if s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
