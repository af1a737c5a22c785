package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/parser"
	"github.com/spigell/ats-matcher/internal/textract"
)

const previewLength = 500

type matchMetadata struct {
	JDFilename              string  `json:"jd_filename"`
	CVFilename              string  `json:"cv_filename"`
	JDBytes                 int     `json:"jd_bytes"`
	CVBytes                 int     `json:"cv_bytes"`
	JDSkillsCount           int     `json:"jd_skills_count"`
	CVSkillsCount           int     `json:"cv_skills_count"`
	JDExperienceYears       float64 `json:"jd_experience_years"`
	CVExperienceYears       float64 `json:"cv_experience_years"`
	JDResponsibilitiesCount int     `json:"jd_responsibilities_count"`
	ProcessingNote          string  `json:"processing_note"`
}

type matchResponse struct {
	*ats.MatchResult
	Metadata matchMetadata `json:"metadata"`
}

type parseMetadata struct {
	Filename       string `json:"filename"`
	FileType       string `json:"file_type"`
	IsJD           bool   `json:"is_jd"`
	TextLength     int    `json:"text_length"`
	ProcessingNote string `json:"processing_note"`
}

type parseResponse struct {
	*ats.ParsedDocument
	TextPreview string        `json:"text_preview"`
	Metadata    parseMetadata `json:"metadata"`
}

// upload is a decoded document held in memory for one request.
type upload struct {
	name  string
	bytes int
	text  string
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "ATS Matching API is running",
		"status":  "healthy",
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	model := s.model
	if model == "" {
		model = "lexical"
	}
	return c.JSON(fiber.Map{
		"status":          "healthy",
		"service":         "ATS Matching API",
		"version":         s.version,
		"model":           model,
		"supported_types": textract.Supported(),
		"time":            time.Now().UTC(),
	})
}

func (s *Server) handleMatch(c *fiber.Ctx) error {
	log := s.requestLogger(c)

	jdHeader, err := formFile(c, "jd_file")
	if err != nil {
		return err
	}
	cvHeader, err := formFile(c, "resume_file")
	if err != nil {
		return err
	}

	log.Info("processing match request",
		zap.String("jd_file", jdHeader.Filename),
		zap.String("cv_file", cvHeader.Filename),
	)

	var (
		jd, cv     *ats.ParsedDocument
		jdUp, cvUp *upload
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		var err error
		jdUp, jd, err = s.parseUpload(ctx, log, jdHeader, true)
		return err
	})
	g.Go(func() error {
		var err error
		cvUp, cv, err = s.parseUpload(ctx, log, cvHeader, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result := s.scorer.Score(c.UserContext(), jd, cv)
	if result.Error != "" {
		log.Error("match calculation failed", zap.String("reason", result.Error))
	}
	log.Info("match calculation completed", zap.Float64("score", result.Score))

	return c.JSON(matchResponse{
		MatchResult: result,
		Metadata: matchMetadata{
			JDFilename:              jdUp.name,
			CVFilename:              cvUp.name,
			JDBytes:                 jdUp.bytes,
			CVBytes:                 cvUp.bytes,
			JDSkillsCount:           len(jd.Skills),
			CVSkillsCount:           len(cv.Skills),
			JDExperienceYears:       jd.Experience.Years,
			CVExperienceYears:       cv.Experience.Years,
			JDResponsibilitiesCount: len(jd.Responsibilities),
			ProcessingNote:          processingNote,
		},
	})
}

func (s *Server) handleParse(c *fiber.Ctx) error {
	log := s.requestLogger(c)

	header, err := formFile(c, "file")
	if err != nil {
		return err
	}

	isJD, err := isJDParam(c)
	if err != nil {
		return err
	}

	up, doc, err := s.parseUpload(c.UserContext(), log, header, isJD)
	if err != nil {
		return err
	}

	return c.JSON(parseResponse{
		ParsedDocument: doc,
		TextPreview:    preview(up.text, previewLength),
		Metadata: parseMetadata{
			Filename:       up.name,
			FileType:       strings.TrimPrefix(textract.Ext(up.name), "."),
			IsJD:           isJD,
			TextLength:     utf8.RuneCountInString(up.text),
			ProcessingNote: "File processed in-memory only. No data stored on server.",
		},
	})
}

// parseUpload reads, decodes and parses one uploaded document. Errors are
// fiber errors carrying the response status.
func (s *Server) parseUpload(ctx context.Context, log *zap.Logger, fh *multipart.FileHeader, isJD bool) (*upload, *ats.ParsedDocument, error) {
	label := documentLabel(isJD)
	log = logger.WithDocument(log, isJD, fh.Filename)

	if _, ok := supported(fh.Filename); !ok {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Unsupported file type: %s. Supported types: %s",
			textract.Ext(fh.Filename), strings.Join(textract.Supported(), ", ")))
	}
	if fh.Size > int64(s.cfg.MaxUploadBytes) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File size too large. Maximum %d bytes allowed.", s.cfg.MaxUploadBytes))
	}

	data, err := readAll(fh, s.cfg.MaxUploadBytes)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, label+" file is empty")
	}

	text, err := textract.Decode(fh.Filename, data)
	if err != nil {
		log.Warn("decoding document failed", zap.Error(err))
		return nil, nil, parseError(label, err)
	}

	doc, err := s.parser.Parse(ctx, text, isJD)
	if err != nil {
		log.Warn("parsing document failed", zap.Error(err))
		return nil, nil, parseError(label, err)
	}

	log.Info("document parsed",
		zap.Int("bytes", len(data)),
		zap.Int("skills", len(doc.Skills)),
		zap.Float64("years", doc.Experience.Years),
	)

	return &upload{name: fh.Filename, bytes: len(data), text: text}, doc, nil
}

func parseError(label string, err error) error {
	var code int
	switch {
	case errors.Is(err, textract.ErrUnsupported), errors.Is(err, textract.ErrTooLarge):
		code = fiber.StatusBadRequest
	case errors.Is(err, textract.ErrDecode), errors.Is(err, textract.ErrEmpty), errors.Is(err, parser.ErrNoText):
		code = fiber.StatusUnprocessableEntity
	default:
		code = fiber.StatusInternalServerError
	}
	return fiber.NewError(code, fmt.Sprintf("Failed to parse %s: %v", label, err))
}

func formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("missing file field %q", field))
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No filename provided")
	}
	return fh, nil
}

func readAll(fh *multipart.FileHeader, limit int) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("reading %s: %v", fh.Filename, err))
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("reading %s: %v", fh.Filename, err))
	}
	if len(data) > limit {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File size too large. Maximum %d bytes allowed.", limit))
	}
	return data, nil
}

func isJDParam(c *fiber.Ctx) (bool, error) {
	raw := c.Query("is_jd")
	if raw == "" {
		raw = c.FormValue("is_jd")
	}
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid is_jd value %q", raw))
	}
	return v, nil
}

func supported(name string) (string, bool) {
	ext := textract.Ext(name)
	for _, s := range textract.Supported() {
		if s == ext {
			return ext, true
		}
	}
	return ext, false
}

func documentLabel(isJD bool) string {
	if isJD {
		return "Job Description"
	}
	return "Resume/CV"
}

func preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
