package server

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/batch"
	"github.com/dshills/atscritic/internal/keywords"
	"github.com/dshills/atscritic/internal/logger"
	"github.com/dshills/atscritic/internal/normalize"
	"github.com/dshills/atscritic/internal/report"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/schema"
)

func (s *Server) registerRoutes() {
	v1 := s.app.Group("/v1")
	v1.Post("/evaluate", s.evaluate)
	v1.Post("/evaluate/batch", s.evaluateBatch)
	v1.Get("/keywords", s.keywords)
	v1.Post("/normalize", s.normalize)
	v1.Post("/validate", s.validate)
	v1.Get("/catalog", s.catalog)
}

func (s *Server) reportOptions(c *fiber.Ctx) report.Options {
	return report.Options{
		Version: s.version,
		Role:    c.Query("role"),
		Patches: c.QueryBool("patches", false),
	}
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	var rec resume.Record
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return failure(c, fiber.StatusBadRequest, "request body must be a JSON resume record", err.Error())
	}

	r := report.Build(s.scorer, rec, s.reportOptions(c))
	s.log.Debug("evaluated", logger.ScoreFields(r.Summary.Score, string(r.Summary.Verdict))...)
	return success(c, "evaluated", r)
}

func (s *Server) evaluateBatch(c *fiber.Ctx) error {
	var recs []resume.Record
	if err := json.Unmarshal(c.Body(), &recs); err != nil {
		return failure(c, fiber.StatusBadRequest, "request body must be a JSON array of resume records", err.Error())
	}
	if len(recs) == 0 {
		return failure(c, fiber.StatusBadRequest, "at least one record is required", nil)
	}
	if len(recs) > MaxBatch {
		return failure(c, fiber.StatusRequestEntityTooLarge, "too many records in one batch", fiber.Map{"max": MaxBatch, "got": len(recs)})
	}

	jobs := make([]batch.Job, len(recs))
	for i, rec := range recs {
		jobs[i] = batch.Job{Record: rec}
	}
	reports, err := batch.Reports(c.UserContext(), s.scorer, jobs, batch.Options{
		Limit:  s.parallel,
		Report: s.reportOptions(c),
		Logger: s.log,
	})
	if err != nil {
		return failure(c, fiber.StatusServiceUnavailable, "batch evaluation cancelled", err.Error())
	}
	return success(c, "evaluated", reports)
}

// KeywordsResponse is returned by GET /v1/keywords.
type KeywordsResponse struct {
	Role     string   `json:"role"`
	Matched  string   `json:"matched,omitempty"`
	Keywords []string `json:"keywords"`
}

func (s *Server) keywords(c *fiber.Ctx) error {
	role := c.Query("role")
	cat := s.scorer.Catalog()
	return success(c, "ok", KeywordsResponse{
		Role:     role,
		Matched:  keywords.Match(cat, role),
		Keywords: keywords.Lookup(cat, role),
	})
}

// NormalizeRequest is the body of POST /v1/normalize.
type NormalizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) normalize(c *fiber.Ctx) error {
	var req NormalizeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return failure(c, fiber.StatusBadRequest, `request body must be {"text": "..."}`, err.Error())
	}
	return success(c, "ok", NormalizeRequest{Text: normalize.Lines(req.Text)})
}

// ValidateResponse is returned by POST /v1/validate.
type ValidateResponse struct {
	Valid    bool                     `json:"valid"`
	Problems []schema.ValidationError `json:"problems"`
}

func (s *Server) validate(c *fiber.Ctx) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return failure(c, fiber.StatusBadRequest, "request body is empty", nil)
	}
	problems, err := schema.ValidateDocument(body, resume.FormatJSON)
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "request body is not valid JSON", err.Error())
	}
	if len(problems) == 0 {
		rec, err := resume.Decode(body, resume.FormatJSON)
		if err != nil {
			return failure(c, fiber.StatusBadRequest, "request body is not a resume record", err.Error())
		}
		for _, fe := range resume.Validate(rec) {
			problems = append(problems, schema.ValidationError{Path: fe.Field, Message: fe.Message})
		}
	}
	if problems == nil {
		problems = []schema.ValidationError{}
	}

	resp := ValidateResponse{Valid: len(problems) == 0, Problems: problems}
	if !resp.Valid {
		s.log.Debug("validation failed", zap.Int("problems", len(problems)))
		return failure(c, fiber.StatusUnprocessableEntity, "validation failed", resp)
	}
	return success(c, "valid", resp)
}

func (s *Server) catalog(c *fiber.Ctx) error {
	return success(c, "ok", s.scorer.Catalog())
}
