package integral

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AbdouB/persona/internal/models"
)

// ConfidenceThreshold is the confidence score below which the classifier
// asks for clarification.
const ConfidenceThreshold = 70.0

// uncertainBand is how close (fraction of the primary score) a level must
// come to the primary to count as an uncertain area.
const uncertainBand = 0.8

// EnhancementError reports a recoverable failure inside the enhancement
// flow. The prior IntegralDetail is never partially overwritten: the
// caller may retry the failed stage or skip.
type EnhancementError struct {
	Stage string
	Err   error
}

func (e *EnhancementError) Error() string {
	return fmt.Sprintf("confidence enhancement failed during %s: %v", e.Stage, e.Err)
}

func (e *EnhancementError) Unwrap() error { return e.Err }

// Analysis is the outcome of the confidence check.
type Analysis struct {
	NeedsAdditionalQuestions bool               `json:"needsAdditionalQuestions"`
	UncertainAreas           []models.LevelPair `json:"uncertainAreas,omitempty"`
}

// AnalyzeConfidence decides whether a result is ambiguous enough to ask
// follow-up questions, and which level pairs the instrument could not
// separate.
func AnalyzeConfidence(detail *models.IntegralDetail) Analysis {
	if detail.Confidence >= ConfidenceThreshold {
		return Analysis{}
	}
	var areas []models.LevelPair
	primaryScore := detail.LevelScores[detail.PrimaryLevel]
	for _, level := range models.IntegralLevels {
		if level == detail.PrimaryLevel {
			continue
		}
		if primaryScore > 0 && detail.LevelScores[level] >= uncertainBand*primaryScore {
			areas = append(areas, models.LevelPair{First: detail.PrimaryLevel, Second: level})
		}
	}
	if len(areas) == 0 && detail.SecondaryLevel != "" {
		areas = append(areas, models.LevelPair{First: detail.PrimaryLevel, Second: detail.SecondaryLevel})
	}
	return Analysis{NeedsAdditionalQuestions: true, UncertainAreas: areas}
}

// Flow is the interactive confidence-enhancement state machine:
//
//	analyzing -> needs_clarification -> generating_questions ->
//	awaiting_responses -> processing -> enhanced
//
// Skip is allowed from any non-terminal state and returns the original
// detail unchanged. A generation or processing failure reverts to the
// previous state so the stage can be retried.
type Flow struct {
	state     models.EnhancementState
	original  *models.IntegralDetail
	analysis  Analysis
	questions []models.DynamicQuestion
	responses []int
	gen       QuestionGenerator
	log       *zap.Logger
}

// NewFlow starts an enhancement flow over an existing result.
func NewFlow(detail *models.IntegralDetail, gen QuestionGenerator, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{
		state:    models.StateAnalyzing,
		original: detail.Clone(),
		gen:      gen,
		log:      log,
	}
}

// State returns the current flow state.
func (f *Flow) State() models.EnhancementState { return f.state }

// Analyze runs the confidence check. A confident result terminates the
// flow immediately with the original detail.
func (f *Flow) Analyze() (Analysis, error) {
	if f.state != models.StateAnalyzing {
		return Analysis{}, &EnhancementError{Stage: "analyzing", Err: fmt.Errorf("flow is in state %s", f.state)}
	}
	f.analysis = AnalyzeConfidence(f.original)
	if !f.analysis.NeedsAdditionalQuestions {
		f.state = models.StateEnhanced
	} else {
		f.state = models.StateNeedsClarification
	}
	return f.analysis, nil
}

// GenerateQuestions produces clarification questions scoped to the
// uncertain level pairs. On failure the flow returns to
// needs_clarification so generation can be retried.
func (f *Flow) GenerateQuestions(ctx context.Context, profile *models.PersonalityProfile) ([]models.DynamicQuestion, error) {
	if f.state != models.StateNeedsClarification {
		return nil, &EnhancementError{Stage: "generating_questions", Err: fmt.Errorf("flow is in state %s", f.state)}
	}
	f.state = models.StateGeneratingQuestions

	questions, err := f.gen.Generate(ctx, f.original, f.analysis.UncertainAreas, profile)
	if err != nil {
		f.state = models.StateNeedsClarification
		f.log.Warn("clarification question generation failed", zap.Error(err))
		return nil, &EnhancementError{Stage: "generating_questions", Err: err}
	}
	if len(questions) == 0 {
		f.state = models.StateNeedsClarification
		return nil, &EnhancementError{Stage: "generating_questions", Err: fmt.Errorf("generator produced no questions")}
	}
	f.questions = questions
	f.state = models.StateAwaitingResponses
	return questions, nil
}

// SubmitResponses records the answers (option index per question) and
// moves the flow to processing.
func (f *Flow) SubmitResponses(responses []int) error {
	if f.state != models.StateAwaitingResponses {
		return &EnhancementError{Stage: "awaiting_responses", Err: fmt.Errorf("flow is in state %s", f.state)}
	}
	if len(responses) != len(f.questions) {
		return &EnhancementError{Stage: "awaiting_responses", Err: fmt.Errorf("expected %d responses, got %d", len(f.questions), len(responses))}
	}
	for i, r := range responses {
		if r < 0 || r >= len(f.questions[i].Options) {
			return &EnhancementError{Stage: "awaiting_responses", Err: fmt.Errorf("response %d selects option %d of %d", i+1, r, len(f.questions[i].Options))}
		}
	}
	f.responses = responses
	f.state = models.StateProcessing
	return nil
}

// Process folds the clarification answers into the level scores and
// recomputes the detail. The primary or secondary level may change. On
// failure the original detail stays intact and the flow returns to
// awaiting_responses.
func (f *Flow) Process() (*models.IntegralDetail, error) {
	if f.state != models.StateProcessing {
		return nil, &EnhancementError{Stage: "processing", Err: fmt.Errorf("flow is in state %s", f.state)}
	}

	enhanced, err := ProcessConfidenceEnhancement(f.original, f.responses, f.questions)
	if err != nil {
		f.state = models.StateAwaitingResponses
		return nil, err
	}
	f.state = models.StateEnhanced
	f.log.Info("confidence enhancement complete",
		zap.String("primary", enhanced.PrimaryLevel),
		zap.Float64("confidence", enhanced.Confidence))
	return enhanced, nil
}

// Skip abandons the flow from any non-terminal state and returns the
// original detail unchanged.
func (f *Flow) Skip() *models.IntegralDetail {
	if !f.state.Terminal() {
		f.state = models.StateSkipped
	}
	return f.original.Clone()
}

// ProcessConfidenceEnhancement recomputes an IntegralDetail from the
// original level scores plus the clarification answers. It is pure: the
// input detail is never mutated.
func ProcessConfidenceEnhancement(detail *models.IntegralDetail, responses []int, questions []models.DynamicQuestion) (*models.IntegralDetail, error) {
	if len(responses) != len(questions) {
		return nil, &EnhancementError{Stage: "processing", Err: fmt.Errorf("expected %d responses, got %d", len(questions), len(responses))}
	}

	raw := make(map[string]float64, len(detail.LevelScores))
	for k, v := range detail.LevelScores {
		raw[k] = v
	}
	consistent := 0
	for i, choice := range responses {
		q := questions[i]
		if choice < 0 || choice >= len(q.Options) {
			return nil, &EnhancementError{Stage: "processing", Err: fmt.Errorf("response %d selects option %d of %d", i+1, choice, len(q.Options))}
		}
		for level, pts := range q.Options[choice].Points {
			if _, ok := raw[level]; !ok {
				return nil, &EnhancementError{Stage: "processing", Err: fmt.Errorf("question %s awards points to unknown level %q", q.ID, level)}
			}
			raw[level] += pts
		}
		if topLevel(q.Options[choice].Points) == detail.PrimaryLevel {
			consistent++
		}
	}

	enhanced := detailFromScores(raw)
	consistency := float64(consistent) / float64(len(responses))
	enhanced.Confidence = confidence(raw, enhanced.PrimaryLevel, enhanced.SecondaryLevel, consistency)
	return enhanced, nil
}
