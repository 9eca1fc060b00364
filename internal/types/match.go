package types

// Match level labels.
const (
	LabelStrong = "Strong Match"
	LabelGood   = "Good Match"
	LabelWeak   = "Weak Match"
)

// MatchResult is the skill comparison of one résumé against one posting.
type MatchResult struct {
	MatchedSkills StringList `json:"matched_skills"`
	MissingSkills StringList `json:"missing_skills"`
	ATSScore      Score      `json:"ATS_score"`
}

// Normalize replaces nil lists with empty ones and clamps the score.
func (m *MatchResult) Normalize() {
	if m.MatchedSkills == nil {
		m.MatchedSkills = StringList{}
	}
	if m.MissingSkills == nil {
		m.MissingSkills = StringList{}
	}
	m.ATSScore = m.ATSScore.Clamp()
}

// Label returns the match level for the result's score.
func (m *MatchResult) Label() string {
	return MatchLabel(int(m.ATSScore))
}

// MatchLabel maps a score to its level. Boundaries belong to the higher tier.
func MatchLabel(score int) string {
	switch {
	case score >= 80:
		return LabelStrong
	case score >= 60:
		return LabelGood
	default:
		return LabelWeak
	}
}
