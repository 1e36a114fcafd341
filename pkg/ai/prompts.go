package ai

import (
	"fmt"
	"strings"
)

const (
	questionsSystemPrompt = "You are Tushar, a professional AI interviewer conducting realistic first-round interviews. Generate personalized questions based on the candidate's resume and job role."
	evaluateSystemPrompt  = "You are Tushar, a professional AI interviewer providing fair and constructive evaluations."
	summarySystemPrompt   = "You are Tushar, providing comprehensive interview summaries with actionable insights."
)

const questionsPromptTemplate = `You are Tushar, a professional AI interviewer. Analyze the candidate's resume and generate exactly %d interview questions.

Candidate Name: %s
Job Role: %s
Resume Text: %s

Generate:
- %d technical questions relevant to the resume and job role
- 1 behavioral question (e.g., team conflict, failure, leadership)

Make questions conversational and speakable. Consider the candidate's domain and technical stack from their resume.

Respond with JSON in this format:
{
  "questions": ["Question 1...", "Question 2...", "Question 3...", "Question 4...", "Question 5..."]
}`

const evaluatePromptTemplate = `You are Tushar, evaluating a candidate's interview answer.

Job Role: %s
Question: %s
Answer: %s

Evaluate this answer considering:
- Clarity and correctness
- Technical depth (if applicable)
- Communication skills
- Domain expertise

Provide a score from 0-10 and 1-2 lines of constructive feedback.

Respond with JSON:
{
  "score": 8,
  "feedback": "Good explanation, but consider mentioning specific examples."
}`

const summaryPromptTemplate = `You are Tushar, providing a final interview summary for %s applying for %s.

Interview Answers and Scores:
%s

Generate a comprehensive summary with:
- Key strengths (2-3 points)
- Improvement areas (2-3 points)
- Final rating out of 10 (based on average performance)
- Recommendation: "Hire" (8+ average), "Maybe" (6-7 average), or "No" (<6 average)

Respond with JSON:
{
  "strengths": "Strong technical foundation and clear communication skills.",
  "improvementAreas": "Could benefit from more hands-on experience with cloud platforms.",
  "finalRating": 7.5,
  "recommendation": "Maybe"
}`

func buildQuestionsPrompt(candidateName, jobRole, resumeText string) string {
	return fmt.Sprintf(questionsPromptTemplate, QuestionCount, candidateName, jobRole, resumeText, TechnicalQuestionCount)
}

func buildEvaluatePrompt(question, answer, jobRole string) string {
	return fmt.Sprintf(evaluatePromptTemplate, jobRole, question, answer)
}

func buildSummaryPrompt(candidateName, jobRole string, answers []AnswerRecord) string {
	lines := make([]string, len(answers))
	for i, a := range answers {
		lines[i] = fmt.Sprintf("Q%d: %s\nAnswer: %s\nScore: %d/10\nFeedback: %s", i+1, a.Question, a.Answer, a.Score, a.Feedback)
	}
	return fmt.Sprintf(summaryPromptTemplate, candidateName, jobRole, strings.Join(lines, "\n\n"))
}
