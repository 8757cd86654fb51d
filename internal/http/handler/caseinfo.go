package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseapi/internal/service"
)

// CaseMetrics aggregates the current catalog snapshot with case-level scores.
func CaseMetrics(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Metrics(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(m)
	}
}

// RunAssessment runs a whole-case assessment and returns the result.
func RunAssessment(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Assess(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(a)
	}
}

// GetAssessment returns the latest retained assessment, 404 if none ran yet.
func GetAssessment(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Assessment(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(a)
	}
}
