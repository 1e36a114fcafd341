package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/firstroundai/interview-server/internal/domain"

	"github.com/go-pdf/fpdf"
)

var ErrReportUnavailable = errors.New("evaluation report is only available for completed interviews")

type reportService struct {
	interviewService domain.InterviewService
}

func NewReportService(interviewService domain.InterviewService) domain.ReportService {
	return &reportService{interviewService: interviewService}
}

func (s *reportService) EvaluationReport(ctx context.Context, interviewID int64) ([]byte, error) {
	detail, err := s.interviewService.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if detail.Interview.Status != domain.InterviewStatusCompleted || detail.Evaluation == nil {
		return nil, ErrReportUnavailable
	}

	return s.renderReport(detail)
}

func (s *reportService) renderReport(detail *domain.InterviewDetail) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, "Interview Evaluation Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, detail.Candidate.Name)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("%s  |  %s  |  %s", detail.Candidate.Email, detail.Candidate.Phone, detail.Candidate.JobRole))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Interview #%d, completed %s", detail.Interview.ID, detail.Interview.CompletedAt.Format("2 Jan 2006 15:04")))
	pdf.Ln(8)

	s.addSection(pdf, "SCORES")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Overall: %d / 100", detail.Evaluation.OverallScore))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Technical: %d / 100", detail.Evaluation.TechnicalScore))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Behavioral: %d / 100", detail.Evaluation.BehavioralScore))
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Recommendation: %s", detail.Evaluation.Recommendation))
	pdf.Ln(8)

	s.addSection(pdf, "STRENGTHS")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4, detail.Evaluation.Strengths, "", "", false)
	pdf.Ln(3)

	s.addSection(pdf, "AREAS FOR IMPROVEMENT")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4, detail.Evaluation.ImprovementAreas, "", "", false)
	pdf.Ln(3)

	s.addSection(pdf, "QUESTIONS AND ANSWERS")
	for _, answer := range detail.Answers {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.MultiCell(0, 4, fmt.Sprintf("Q%d. %s", answer.QuestionIndex+1, answer.QuestionText), "", "", false)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 4, answer.AnswerText, "", "", false)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 4, fmt.Sprintf("Score: %d/10 - %s", answer.Score, answer.Feedback), "", "", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) addSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
	pdf.SetDrawColor(180, 180, 180)
	x, y := pdf.GetX(), pdf.GetY()
	pdf.Line(x, y, 195, y)
	pdf.Ln(2)
}
