package interview

import "fmt"

// Decision labels, highest band first.
const (
	DecisionStrongHire = "Strong Hire"
	DecisionHire       = "Hire"
	DecisionMaybe      = "Maybe"
	DecisionNoHire     = "No Hire"
)

// Band thresholds on the 0-10 overall scale. Lower bounds are inclusive.
const (
	strongHireThreshold = 7.5
	hireThreshold       = 6.0
	maybeThreshold      = 5.0

	strengthThreshold    = 7.0
	improvementThreshold = 5.0
)

// Aggregate is the reduction of a list of scores.
type Aggregate struct {
	AvgCommunication  float64
	AvgTechnical      float64
	AvgProblemSolving float64
	OverallScore      float64
	Decision          string
	Narrative         string
	Strengths         []string
	Improvements      []string
}

// axis pairs an averaged dimension with its qualitative labels.
type axis struct {
	avg         float64
	strength    string
	improvement string
}

// AggregateScores reduces scores into averages, a decision and qualitative
// buckets. Each axis is an unweighted arithmetic mean.
func AggregateScores(scores []Score) (Aggregate, error) {
	if len(scores) == 0 {
		return Aggregate{}, ErrNoAnswersYet
	}

	var comm, tech, prob, overall float64
	for _, s := range scores {
		comm += s.Communication
		tech += s.TechnicalKnowledge
		prob += s.ProblemSolving
		overall += s.Overall
	}
	n := float64(len(scores))

	agg := Aggregate{
		AvgCommunication:  comm / n,
		AvgTechnical:      tech / n,
		AvgProblemSolving: prob / n,
		OverallScore:      overall / n,
		Strengths:         []string{},
		Improvements:      []string{},
	}
	agg.Decision = Decide(agg.OverallScore)
	agg.Narrative = fmt.Sprintf(
		"Overall performance was %s. Communication skills scored %.1f/10, technical knowledge scored %.1f/10, and problem-solving scored %.1f/10.",
		bandWord(agg.OverallScore), agg.AvgCommunication, agg.AvgTechnical, agg.AvgProblemSolving,
	)

	axes := []axis{
		{agg.AvgCommunication, "Strong communication skills", "Communication clarity and articulation"},
		{agg.AvgTechnical, "Solid technical knowledge", "Technical depth and understanding"},
		{agg.AvgProblemSolving, "Good problem-solving approach", "Problem-solving methodology"},
	}
	for _, a := range axes {
		switch {
		case a.avg >= strengthThreshold:
			agg.Strengths = append(agg.Strengths, a.strength)
		case a.avg < improvementThreshold:
			agg.Improvements = append(agg.Improvements, a.improvement)
		}
	}

	return agg, nil
}

// Decide maps an overall score to a hiring decision.
func Decide(overall float64) string {
	switch {
	case overall >= strongHireThreshold:
		return DecisionStrongHire
	case overall >= hireThreshold:
		return DecisionHire
	case overall >= maybeThreshold:
		return DecisionMaybe
	default:
		return DecisionNoHire
	}
}

func bandWord(overall float64) string {
	switch {
	case overall >= strongHireThreshold:
		return "excellent"
	case overall >= hireThreshold:
		return "good"
	case overall >= maybeThreshold:
		return "satisfactory"
	default:
		return "needs improvement"
	}
}

// Summary is the evaluation returned by GetSummary.
type Summary struct {
	SessionID         string   `json:"interview_id"`
	TotalQuestions    int      `json:"total_questions"`
	AnsweredQuestions int      `json:"answered_questions"`
	AvgCommunication  float64  `json:"average_communication"`
	AvgTechnical      float64  `json:"average_technical"`
	AvgProblemSolving float64  `json:"average_problem_solving"`
	OverallScore      float64  `json:"overall_score"`
	Decision          string   `json:"decision"`
	Narrative         string   `json:"detailed_feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"areas_for_improvement"`
	Completed         bool     `json:"completed"`
	State             string   `json:"state"`
}

// BuildSummary aggregates a record's scores without modifying it.
func BuildSummary(rec *Record) (*Summary, error) {
	agg, err := AggregateScores(rec.Scores)
	if err != nil {
		return nil, guardErr(err, rec)
	}
	return &Summary{
		SessionID:         rec.ID,
		TotalQuestions:    len(rec.Questions),
		AnsweredQuestions: len(rec.Scores),
		AvgCommunication:  agg.AvgCommunication,
		AvgTechnical:      agg.AvgTechnical,
		AvgProblemSolving: agg.AvgProblemSolving,
		OverallScore:      agg.OverallScore,
		Decision:          agg.Decision,
		Narrative:         agg.Narrative,
		Strengths:         agg.Strengths,
		Improvements:      agg.Improvements,
		Completed:         rec.Completed,
		State:             rec.State().String(),
	}, nil
}
