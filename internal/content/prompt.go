package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/mockinterview/internal/interview"
)

const questionsPrompt = `You are an experienced interviewer preparing a mock job interview.

Rules:
- Generate exactly the requested number of questions, one per numbered slot.
- Each question must match the category of its slot and the requested difficulty.
- Questions must be self-contained and answerable verbally in a few minutes.
- Do not number the questions or add commentary inside the question text.
- Do not repeat a question or ask two near-identical questions.`

const scorePrompt = `You are an expert technical interviewer. Score the candidate's single answer strictly.

Rules:
- Score communication, technical_knowledge, problem_solving and overall on a 0 to 10 scale.
- An empty, off-topic or evasive answer scores below 3 on every axis.
- Feedback is at most 60 words and addresses the candidate directly.`

const followupPrompt = `You are a concise technical interviewer. Generate ONE short follow-up question (max 25 words) to probe deeper based on the prior question and the candidate's answer. If no follow-up is needed, respond with NONE.`

// maxTranscriptChars bounds the transcript quoted back to the model.
const maxTranscriptChars = 6000

func buildQuestionsMessage(categories []interview.Category, difficulty interview.Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	if difficulty == interview.DifficultyMixed {
		b.WriteString("Spread the questions across easy, medium and hard.\n")
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nSlots:\n")
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, categories[i%len(categories)])
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildAnswerMessage(question, transcript string) string {
	return fmt.Sprintf("Question: %s\n\nCandidate answer (transcript): %s", question, truncate(transcript, maxTranscriptChars))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// isNone reports whether a follow-up reply means "no follow-up".
func isNone(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.HasPrefix(strings.ToUpper(s), "NONE")
}
