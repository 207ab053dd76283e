package models

// Integral developmental levels, lowest to highest. Order matters: ties in
// level scoring resolve toward the earlier (more conservative) level, and
// the developmental edge is the next level up.
var IntegralLevels = []string{
	"Impulsive",
	"Conformist",
	"Achiever",
	"Pluralist",
	"Integral",
	"Transpersonal",
}

// LevelIndex returns the position of a level name, or -1.
func LevelIndex(level string) int {
	for i, l := range IntegralLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// IntegralDetail is the Integral-level classification for one respondent.
// It is replaced wholesale by re-scoring or by a completed confidence
// enhancement, never edited field by field.
type IntegralDetail struct {
	PrimaryLevel        string             `json:"primaryLevel"`
	SecondaryLevel      string             `json:"secondaryLevel,omitempty"`
	Confidence          float64            `json:"confidence"` // 0-100
	CognitiveComplexity string             `json:"cognitiveComplexity"`
	RealityTriadMapping map[string]string  `json:"realityTriadMapping"`
	DevelopmentalEdge   string             `json:"developmentalEdge,omitempty"`
	LevelScores         map[string]float64 `json:"levelScores"`
}

// Clone returns a deep copy.
func (d *IntegralDetail) Clone() *IntegralDetail {
	if d == nil {
		return nil
	}
	out := *d
	out.RealityTriadMapping = make(map[string]string, len(d.RealityTriadMapping))
	for k, v := range d.RealityTriadMapping {
		out.RealityTriadMapping[k] = v
	}
	out.LevelScores = make(map[string]float64, len(d.LevelScores))
	for k, v := range d.LevelScores {
		out.LevelScores[k] = v
	}
	return &out
}

// EnhancementState is a stage of the confidence-enhancement flow.
type EnhancementState string

const (
	StateAnalyzing           EnhancementState = "analyzing"
	StateNeedsClarification  EnhancementState = "needs_clarification"
	StateGeneratingQuestions EnhancementState = "generating_questions"
	StateAwaitingResponses   EnhancementState = "awaiting_responses"
	StateProcessing          EnhancementState = "processing"
	StateEnhanced            EnhancementState = "enhanced"
	StateSkipped             EnhancementState = "skipped"
)

// Terminal reports whether the flow can no longer advance.
func (s EnhancementState) Terminal() bool {
	return s == StateEnhanced || s == StateSkipped
}

// LevelPair identifies two adjacent-scoring levels the classifier could not
// confidently separate.
type LevelPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// QuestionOption is one selectable answer, awarding points per level.
type QuestionOption struct {
	Text   string             `json:"text"`
	Points map[string]float64 `json:"points"`
}

// DynamicQuestion is a clarification question generated for a specific
// uncertain level pair.
type DynamicQuestion struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Targets LevelPair        `json:"targets"`
	Options []QuestionOption `json:"options"`
}
