package domain

import "context"

// ResumeService extracts plain text from an uploaded résumé. Extraction is
// best-effort: when the file cannot be parsed, a templated stand-in built
// from the candidate's details is returned instead of an error.
type ResumeService interface {
	ExtractText(ctx context.Context, fileName string, data []byte, candidateName, jobRole string) string
}

// ReportService renders a completed interview's evaluation as a PDF.
type ReportService interface {
	EvaluationReport(ctx context.Context, interviewID int64) ([]byte, error)
}
