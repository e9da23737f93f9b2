package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

// Field length limits.
const (
	MaxPostIDLen  = 64
	MaxUserIDLen  = 64
	MaxAuthorLen  = 80
	MaxReasonLen  = 500
	MaxContentLen = 2000
	MaxQueryLen   = 200
)

var (
	// postIDRe matches generated post ids: prefix, uuid, counters.
	postIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// userIDRe matches community handles.
	userIDRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePostID checks that a post id is well-formed.
func ValidatePostID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "postId is required"
	}
	if len(id) > MaxPostIDLen {
		return "", "postId must be at most 64 characters"
	}
	if !postIDRe.MatchString(id) {
		return "", "postId contains invalid characters"
	}
	return id, ""
}

// ValidateUserID checks that a community handle is well-formed.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId contains invalid characters"
	}
	return id, ""
}

// ValidateAuthor checks an author display name used as a path parameter.
func ValidateAuthor(author string) (string, string) {
	author = strings.TrimSpace(author)
	if author == "" {
		return "", "author is required"
	}
	if len(author) > MaxAuthorLen {
		return "", "author must be at most 80 characters"
	}
	return author, ""
}

// ValidateRole checks a community role value.
func ValidateRole(role string) (model.CommunityRole, string) {
	r := model.CommunityRole(strings.TrimSpace(role))
	if !model.ValidRoles[r] {
		return "", "role must be one of: Journalist, Expert, Eyewitness, Citizen"
	}
	return r, ""
}

// ValidateVoteVerdict checks a vote verdict value.
func ValidateVoteVerdict(verdict string) (model.VoteVerdict, string) {
	v := model.VoteVerdict(strings.ToUpper(strings.TrimSpace(verdict)))
	if !model.ValidVoteVerdicts[v] {
		return "", "verdict must be one of: REAL, FAKE, UNSURE"
	}
	return v, ""
}

// ValidateVerdictFilter checks a feed filter value ("ALL" or a post verdict).
func ValidateVerdictFilter(filter string) (string, string) {
	f := strings.ToUpper(strings.TrimSpace(filter))
	if f == "" || f == model.FilterAll {
		return model.FilterAll, ""
	}
	if !model.ValidVerdicts[model.Verdict(f)] {
		return "", "filter must be ALL or a valid verdict"
	}
	return f, ""
}

// ValidateSortKey checks a feed sort key, defaulting to LATEST.
func ValidateSortKey(key string) (model.SortKey, string) {
	k := model.SortKey(strings.ToUpper(strings.TrimSpace(key)))
	if k == "" {
		return model.SortLatest, ""
	}
	if !model.ValidSortKeys[k] {
		return "", "sort must be one of: LATEST, TRUST_HIGH, TRUST_LOW, CROWD_HIGH"
	}
	return k, ""
}

// ValidateReason trims and truncates a vote reason.
func ValidateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLen {
		reason = reason[:MaxReasonLen]
	}
	return reason
}

// ValidateQuery checks a search query.
func ValidateQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "query is required"
	}
	if len(q) > MaxQueryLen {
		return "", "query must be at most 200 characters"
	}
	return q, ""
}
