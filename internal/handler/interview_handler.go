package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/internal/service"
	"github.com/firstroundai/interview-server/pkg/response"
	pkgvalidator "github.com/firstroundai/interview-server/pkg/validator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	interviewService domain.InterviewService
	resumeService    domain.ResumeService
	reportService    domain.ReportService
	resumeValidator  *pkgvalidator.FileValidator
}

func NewInterviewHandler(
	interviewService domain.InterviewService,
	resumeService domain.ResumeService,
	reportService domain.ReportService,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		resumeService:    resumeService,
		reportService:    reportService,
		resumeValidator:  pkgvalidator.ResumeValidator(),
	}
}

// Start accepts a multipart form with the candidate's details and an
// optional resume file.
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	req := domain.StartInterviewRequest{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		JobRole: c.FormValue("jobRole"),
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	file, err := c.FormFile("resume")
	if err == nil {
		if err := h.resumeValidator.Validate(file); err != nil {
			return response.BadRequest(c, err.Error())
		}
		data, err := readMultipartFile(file)
		if err != nil {
			return response.BadRequest(c, "failed to read resume file")
		}
		req.ResumeText = h.resumeService.ExtractText(c.UserContext(), file.Filename, data, req.Name, req.JobRole)
	}

	result, err := h.interviewService.Start(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrResumeRequired) {
			return response.BadRequest(c, "resume file is required")
		}
		if errors.Is(err, service.ErrCandidateDisqualified) {
			return response.Forbidden(c, "candidate has been disqualified")
		}
		if errors.Is(err, service.ErrCandidateAlreadyAssessed) {
			return response.Forbidden(c, "candidate has already completed an interview")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusCreated, "interview started", result)
}

func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req domain.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.interviewService.SubmitAnswer(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return response.NotFound(c, "interview not found")
		}
		if errors.Is(err, service.ErrInterviewCompleted) {
			return response.BadRequest(c, "interview already completed")
		}
		if errors.Is(err, service.ErrInvalidQuestionIndex) {
			return response.BadRequest(c, "question index does not match the current question")
		}
		if errors.Is(err, service.ErrQuestionAlreadyAnswered) {
			return response.BadRequest(c, "question has already been answered")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "answer evaluated", result)
}

func (h *InterviewHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid interview id")
	}

	detail, err := h.interviewService.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return response.NotFound(c, "interview not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "interview retrieved", detail)
}

func (h *InterviewHandler) ResultsByCandidate(c *fiber.Ctx) error {
	id, err := parseID(c, "candidateId")
	if err != nil {
		return response.BadRequest(c, "invalid candidate id")
	}

	results, err := h.interviewService.ResultsByCandidate(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			return response.NotFound(c, "candidate not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "results retrieved", results)
}

func (h *InterviewHandler) DownloadReport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid interview id")
	}

	report, err := h.reportService.EvaluationReport(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return response.NotFound(c, "interview not found")
		}
		if errors.Is(err, service.ErrReportUnavailable) {
			return response.BadRequest(c, "evaluation report is only available for completed interviews")
		}
		return response.InternalError(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="evaluation-report.pdf"`)
	return c.Send(report)
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	return strconv.ParseInt(c.Params(param), 10, 64)
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func validateStruct(v interface{}) error {
	validate := validator.New()
	return validate.Struct(v)
}
