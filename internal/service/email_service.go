package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/firstroundai/interview-server/internal/config"
	"github.com/firstroundai/interview-server/internal/domain"
)

type emailService struct {
	cfg         config.SMTPConfig
	frontendURL string
}

func NewEmailService(cfg config.SMTPConfig, frontendURL string) domain.EmailService {
	return &emailService{cfg: cfg, frontendURL: frontendURL}
}

func (s *emailService) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *emailService) SendInterviewInvitation(_ context.Context, to, name, jobRole, skillset, token string) error {
	subject := fmt.Sprintf("Interview Invitation - %s Position", jobRole)

	inviteLink := fmt.Sprintf("%s/interview?token=%s", s.frontendURL, token)

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"You have been invited to an AI-assisted screening interview for the %s position.\n\n",
		name, jobRole)
	if skillset != "" {
		body += fmt.Sprintf("The interview focuses on: %s\n\n", skillset)
	}
	body += fmt.Sprintf(
		"Start your interview here: %s\n\n"+
			"The interview consists of five questions and takes about 20 minutes. You can only complete it once, so make sure you have a quiet moment before you begin.\n\n"+
			"Good luck!\n"+
			"FirstRound AI Team", inviteLink)

	return s.sendEmail(to, subject, body)
}
