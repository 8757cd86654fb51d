package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"caseapi/internal/model"
	"caseapi/internal/query"
	"caseapi/internal/service"
)

// UploadEvidence handles multipart evidence uploads (field name: file).
// Declared metadata rides along as form fields.
func UploadEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		mediaType := c.FormValue("media_type")
		if _, err := model.ParseMediaType(mediaType); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MEDIA_TYPE", err.Error())
		}
		importance := c.FormValue("importance")
		if importance != "" {
			if _, err := model.ParseImportance(importance); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_IMPORTANCE", err.Error())
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		rec, err := svc.Ingest(c.UserContext(), f, service.IngestInput{
			Filename:    fh.Filename,
			MediaType:   mediaType,
			Category:    c.FormValue("category"),
			Importance:  importance,
			Tags:        splitTags(c.FormValue("tags")),
			Description: c.FormValue("description"),
			ContentType: ct,
			Size:        fh.Size,
		})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListEvidence handles filtered catalog listings. Filter params: q (text),
// category, type; "all" or absent means the dimension is unconstrained.
func ListEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), query.Criteria{
			Text:      c.Query("q"),
			Category:  c.Query("category", query.All),
			MediaType: c.Query("type", query.All),
		})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(res)
	}
}

// GetEvidence returns a single catalog record by id.
func GetEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(rec)
	}
}

// ListCategories returns the distinct category labels in the catalog.
func ListCategories(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := svc.Categories(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{"data": cats})
	}
}

// DownloadEvidence returns a time-limited link to the stored object.
func DownloadEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteEvidence removes a record along with its stored object. Deleting an
// absent id still returns 204.
func DeleteEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RetryEvidence re-runs annotation for a record stuck in the error state.
func RetryEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Retry(c.UserContext(), id); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusAccepted)
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
