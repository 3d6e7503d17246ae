package progress

import "sort"

// DemoProgress is shown when the API cannot be reached.
func DemoProgress() map[string]float64 {
	return map[string]float64{
		"JavaScript": 75,
		"Python":     60,
		"React":      80,
		"Node.js":    65,
		"CSS":        70,
		"HTML":       85,
		"Git":        55,
		"SQL":        50,
	}
}

// SkillScore is one skill and its progress.
type SkillScore struct {
	Skill    string
	Progress float64
}

// Stats summarises a progress mapping.
type Stats struct {
	Total     int
	Average   float64
	Strongest []SkillScore // best first
	Weakest   []SkillScore // weakest last
}

const statsTop = 3

// Summarize computes totals plus the three strongest and three weakest skills.
// Ties are broken by skill name so the result is stable.
func Summarize(p map[string]float64) Stats {
	scores := make([]SkillScore, 0, len(p))
	sum := 0.0
	for skill, v := range p {
		scores = append(scores, SkillScore{Skill: skill, Progress: v})
		sum += v
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Progress != scores[j].Progress {
			return scores[i].Progress > scores[j].Progress
		}
		return scores[i].Skill < scores[j].Skill
	})

	st := Stats{Total: len(scores)}
	if st.Total == 0 {
		return st
	}
	st.Average = sum / float64(st.Total)
	n := min(statsTop, st.Total)
	st.Strongest = append([]SkillScore(nil), scores[:n]...)
	st.Weakest = append([]SkillScore(nil), scores[st.Total-n:]...)
	return st
}
