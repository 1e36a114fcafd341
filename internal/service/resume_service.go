package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/firstroundai/interview-server/internal/domain"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

type resumeService struct {
	log *zap.Logger
}

func NewResumeService(log *zap.Logger) domain.ResumeService {
	return &resumeService{log: log}
}

// ExtractText pulls plain text out of an uploaded résumé. PDFs go through
// MuPDF; plain text files are taken as-is. Word documents and unparseable
// PDFs fall back to a templated stand-in so question generation always has
// something to work with.
func (s *resumeService) ExtractText(_ context.Context, fileName string, data []byte, candidateName, jobRole string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err := s.extractPDF(data)
		if err != nil || strings.TrimSpace(text) == "" {
			s.log.Warn("resume text extraction failed, using template",
				zap.String("fileName", fileName),
				zap.Error(err),
			)
			return templateResumeText(candidateName, jobRole)
		}
		return text
	case ".txt":
		return string(data)
	default:
		return templateResumeText(candidateName, jobRole)
	}
}

func (s *resumeService) extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", n+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func templateResumeText(candidateName, jobRole string) string {
	return fmt.Sprintf(
		"Resume for %s\n\nApplying for the position of %s.\n\nThe resume file could not be parsed automatically. Questions should be generated from the stated job role.",
		candidateName, jobRole)
}
