package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/parser"
	"github.com/spigell/ats-matcher/internal/scoring"
)

const (
	jdText = `Senior Backend Engineer
We need 5+ years of experience with Go, Docker and Kubernetes.
Salary: 10-15 LPA.
- Design and build scalable microservices for payments.
- Mentor junior engineers and review code.`

	cvText = `Senior software engineer with 6 years of experience.
Skills: Go, Docker, Python, PostgreSQL.
Expected CTC 12 LPA.
B.Tech in Computer Science from IIT Delhi.
I design and build scalable microservices for payments.`
)

type part struct {
	field, name, content string
}

func newTestServer() *Server {
	return New(Config{}, parser.New(zap.NewNop(), nil), scoring.New(zap.NewNop(), nil), zap.NewNop(), WithVersion("test"))
}

func multipartRequest(t *testing.T, url string, parts ...part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(fw, p.content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func do(t *testing.T, s *Server, req *http.Request) (int, map[string]any, http.Header) {
	t.Helper()

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out, resp.Header
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer()

	code, body, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusOK || body["status"] != "healthy" {
		t.Fatalf("unexpected root response %d %v", code, body)
	}

	code, body, headers := do(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if body["version"] != "test" || body["model"] != "lexical" {
		t.Fatalf("unexpected health body %v", body)
	}
	if headers.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestMatchEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := multipartRequest(t, "/api/ats/match",
		part{"jd_file", "jd.txt", jdText},
		part{"resume_file", "cv.txt", cvText},
	)

	code, body, _ := do(t, s, req)
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", code, body)
	}

	score, ok := body["score"].(float64)
	if !ok || score <= 0 || score > 100 {
		t.Fatalf("unexpected score %v", body["score"])
	}

	matched, _ := body["matched_skills"].([]any)
	if len(matched) == 0 {
		t.Fatalf("expected matched skills, got %v", body["matched_skills"])
	}

	meta := body["metadata"].(map[string]any)
	if meta["jd_filename"] != "jd.txt" || meta["cv_filename"] != "cv.txt" {
		t.Fatalf("unexpected metadata %v", meta)
	}
	if meta["jd_experience_years"] != float64(5) || meta["cv_experience_years"] != float64(6) {
		t.Fatalf("unexpected experience metadata %v", meta)
	}
	if meta["jd_bytes"] != float64(len(jdText)) {
		t.Fatalf("unexpected jd bytes %v", meta["jd_bytes"])
	}
	if !strings.Contains(meta["processing_note"].(string), "in-memory") {
		t.Fatalf("unexpected processing note %v", meta["processing_note"])
	}
}

func TestMatchEndpointErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parts  []part
		status int
		detail string
	}{
		{
			name:   "missing resume",
			parts:  []part{{"jd_file", "jd.txt", jdText}},
			status: http.StatusBadRequest,
			detail: `"resume_file"`,
		},
		{
			name:   "unsupported type",
			parts:  []part{{"jd_file", "jd.exe", jdText}, {"resume_file", "cv.txt", cvText}},
			status: http.StatusBadRequest,
			detail: "Unsupported file type: .exe",
		},
		{
			name:   "empty file",
			parts:  []part{{"jd_file", "jd.txt", jdText}, {"resume_file", "cv.txt", ""}},
			status: http.StatusBadRequest,
			detail: "Resume/CV file is empty",
		},
		{
			name:   "blank text",
			parts:  []part{{"jd_file", "jd.txt", "   \n  "}, {"resume_file", "cv.txt", cvText}},
			status: http.StatusUnprocessableEntity,
			detail: "Failed to parse Job Description",
		},
		{
			name:   "broken pdf",
			parts:  []part{{"jd_file", "jd.txt", jdText}, {"resume_file", "cv.pdf", "not a pdf"}},
			status: http.StatusUnprocessableEntity,
			detail: "could not decode document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer()
			code, body, _ := do(t, s, multipartRequest(t, "/api/ats/match", tt.parts...))
			if code != tt.status {
				t.Fatalf("expected status %d, got %d: %v", tt.status, code, body)
			}
			detail, _ := body["detail"].(string)
			if !strings.Contains(detail, tt.detail) {
				t.Fatalf("expected detail containing %q, got %q", tt.detail, detail)
			}
		})
	}
}

func TestParseEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	long := jdText + "\n" + strings.Repeat("Additional context about the team. ", 30)
	req := multipartRequest(t, "/api/ats/parse?is_jd=true", part{"file", "jd.txt", long})

	code, body, _ := do(t, s, req)
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", code, body)
	}

	preview := body["text_preview"].(string)
	if !strings.HasSuffix(preview, "...") || len([]rune(preview)) != previewLength+3 {
		t.Fatalf("unexpected preview length %d", len([]rune(preview)))
	}

	if _, ok := body["responsibilities"]; !ok {
		t.Fatalf("expected responsibilities for a job description: %v", body)
	}

	meta := body["metadata"].(map[string]any)
	if meta["is_jd"] != true || meta["file_type"] != "txt" {
		t.Fatalf("unexpected metadata %v", meta)
	}
}

func TestParseEndpointInvalidFlag(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := multipartRequest(t, "/api/ats/parse?is_jd=maybe", part{"file", "cv.txt", cvText})

	code, _, _ := do(t, s, req)
	if code != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", code)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	if got := preview("short", 10); got != "short" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := preview("ёжикёжик", 4); got != "ёжик..." {
		t.Fatalf("unexpected preview %q", got)
	}
}
