package ai

import (
	"math"
	"regexp"
	"strings"
)

// Mock is the deterministic local provider substituted whenever a backend
// fails or returns invalid data. It is pure and network-free, so its
// results are always structurally valid and the orchestrator never depends
// on external service availability.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

var roleQuestions = map[string][]string{
	"frontend": {
		"What is the virtual DOM in React and how does it improve performance?",
		"Explain the difference between let, const, and var in JavaScript.",
		"How would you optimize a React application for better performance?",
		"Describe your experience with CSS preprocessors and modern CSS features.",
	},
	"backend": {
		"Explain the differences between SQL and NoSQL databases.",
		"How do you handle error handling in Node.js applications?",
		"Describe your approach to API design and RESTful services.",
		"What are the key considerations for database indexing?",
	},
	"fullstack": {
		"How do you ensure data consistency between frontend and backend?",
		"Explain your approach to implementing authentication and authorization.",
		"Describe your experience with deployment pipelines and DevOps practices.",
		"How would you design a scalable web application architecture?",
	},
	"qa": {
		"What is your approach to writing comprehensive test cases?",
		"Explain the difference between unit, integration, and end-to-end testing.",
		"How do you handle testing in agile development environments?",
		"Describe your experience with test automation frameworks.",
	},
	"devops": {
		"Explain your experience with containerization using Docker.",
		"How do you implement CI/CD pipelines for automated deployments?",
		"Describe your approach to monitoring and logging in production systems.",
		"What are the key considerations for cloud infrastructure management?",
	},
	"ml": {
		"Explain the bias-variance tradeoff in machine learning.",
		"How do you handle overfitting in deep learning models?",
		"Describe your experience with feature engineering and selection.",
		"What are the key considerations for deploying ML models in production?",
	},
	"mobile": {
		"Explain the differences between native and cross-platform mobile development.",
		"How do you handle state management in mobile applications?",
		"Describe your approach to mobile app performance optimization.",
		"What are the key considerations for mobile app security?",
	},
}

const behavioralQuestion = "Tell me about a time when you had to work with a difficult team member and how you handled the situation."

var (
	codeKeywordPattern = regexp.MustCompile(`(?i)\b(function|class|const|let|var|async|await|return|if|else|for|while|array|object|API|HTTP|database|SQL|React|Node|JavaScript|TypeScript|Python|Java|Go|C\+\+)\b`)
	examplePattern     = regexp.MustCompile(`(?i)\b(example|instance|experience|project|used|implemented|worked|built|developed)\b`)
)

var feedbackOptions = []string{
	"Good explanation with relevant details. Consider adding more specific examples.",
	"Clear answer that demonstrates understanding. Could be more comprehensive.",
	"Well-structured response. Try to include more technical depth.",
	"Solid answer with good examples. Consider discussing edge cases or alternatives.",
	"Comprehensive response showing good knowledge. Well done!",
	"Excellent detailed explanation with practical insights. Great job!",
	"Outstanding answer with thorough coverage and real-world examples.",
}

func (m *Mock) GenerateQuestions(candidateName, jobRole, resumeText string) *QuestionSet {
	technical, ok := roleQuestions[strings.ToLower(jobRole)]
	if !ok {
		technical = roleQuestions["fullstack"]
	}

	questions := make([]string, 0, QuestionCount)
	questions = append(questions, technical...)
	questions = append(questions, behavioralQuestion)

	return &QuestionSet{Questions: questions}
}

// EvaluateAnswer scores on answer length and keyword signals, clamped to
// [3,10] like the original heuristic, so even an empty answer yields a
// structurally valid evaluation.
func (m *Mock) EvaluateAnswer(question, answer, jobRole string) *AnswerEvaluation {
	trimmed := strings.TrimSpace(answer)
	hasKeywords := codeKeywordPattern.MatchString(trimmed)
	hasExamples := examplePattern.MatchString(trimmed)

	score := 5
	if len(trimmed) > 100 {
		score++
	}
	if len(trimmed) > 300 {
		score++
	}
	if hasKeywords {
		score++
	}
	if hasExamples {
		score++
	}
	if len(trimmed) > 500 && hasKeywords && hasExamples {
		score++
	}
	if score < 3 {
		score = 3
	}
	if score > 10 {
		score = 10
	}

	feedbackIndex := score - 3
	if feedbackIndex > len(feedbackOptions)-1 {
		feedbackIndex = len(feedbackOptions) - 1
	}

	return &AnswerEvaluation{
		Score:    score,
		Feedback: feedbackOptions[feedbackIndex],
	}
}

func (m *Mock) GenerateSummary(candidateName, jobRole string, answers []AnswerRecord) *InterviewSummary {
	var total float64
	for _, a := range answers {
		total += float64(a.Score)
	}
	avg := 0.0
	if len(answers) > 0 {
		avg = total / float64(len(answers))
	}

	summary := &InterviewSummary{
		FinalRating: math.Round(avg*10) / 10,
	}

	switch {
	case avg >= 8:
		summary.Strengths = "Demonstrates strong technical knowledge and excellent communication skills. Shows practical experience with relevant technologies and provides clear, detailed explanations."
		summary.ImprovementAreas = "Continue developing expertise in emerging technologies. Consider leadership and mentoring opportunities."
		summary.Recommendation = RecommendationHire
	case avg >= 6:
		summary.Strengths = "Good foundational knowledge and decent communication skills. Shows understanding of core concepts and some practical experience."
		summary.ImprovementAreas = "Could benefit from more hands-on experience and deeper technical knowledge. Work on providing more comprehensive examples and explanations."
		summary.Recommendation = RecommendationMaybe
	default:
		summary.Strengths = "Shows basic understanding of fundamental concepts. Demonstrates willingness to learn and grow."
		summary.ImprovementAreas = "Needs significant development in technical skills and practical experience. Focus on building stronger foundation and communication abilities."
		summary.Recommendation = RecommendationNo
	}

	return summary
}
