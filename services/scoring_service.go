package services

import (
	"strings"

	"fight-picks-go/models"
)

// ScoringService computes the point value of a pick against an official
// result. It is pure: no storage access, no error path, total over all
// inputs. The result workflow and tests are its only callers.
//
// Point scale:
//   - wrong corner, or no winning corner (draw / no contest): 0
//   - correct corner only: 1
//   - correct corner + method: 2
//   - correct corner + method + exact round (non-decision picks): 3
type ScoringService struct{}

// NewScoringService creates a scoring service
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// NormalizeMethod classifies a free-text finish method into the canonical
// pickable set. Admins enter results as varied text ("TKO (punches)",
// "Decision (Unanimous)"); this single rule is what lets that text match
// user selections exactly. Anything without a KO/TKO or SUB marker,
// including the empty string, counts as a decision.
func (s *ScoringService) NormalizeMethod(method string) models.VictoryMethod {
	upper := strings.ToUpper(method)
	if strings.Contains(upper, "KO") || strings.Contains(upper, "TKO") {
		return models.MethodKnockout
	}
	if strings.Contains(upper, "SUB") {
		return models.MethodSubmission
	}
	return models.MethodDecision
}

// ScorePick returns whether the pick named the winning corner and how many
// points it earns under the given result.
func (s *ScoringService) ScorePick(pick *models.Pick, result *models.BoutResult) (bool, int) {
	// Draws and no contests reward nobody, regardless of pick content.
	if result == nil || result.Winner == nil {
		return false, 0
	}

	if pick.PickedCorner != *result.Winner {
		return false, 0
	}

	// The same normalization is applied to both sides of the comparison.
	methodMatch := s.NormalizeMethod(string(pick.PickedMethod)) == s.NormalizeMethod(result.Method)

	if pick.PickedMethod == models.MethodDecision {
		// Round is meaningless for a decision; DEC picks cap at 2.
		if methodMatch {
			return true, 2
		}
		return true, 1
	}

	roundMatch := pick.PickedRound != nil && result.Round != nil && *pick.PickedRound == *result.Round

	switch {
	case methodMatch && roundMatch:
		return true, models.MaxPoints
	case methodMatch:
		return true, 2
	default:
		return true, 1
	}
}
