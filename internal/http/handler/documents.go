package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"caseapi/internal/model"
	"caseapi/internal/service"
)

type documentRequest struct {
	Title        string `json:"title"`
	DocumentType string `json:"document_type"`
	Description  string `json:"description"`
	Importance   string `json:"importance"`
	SizeBytes    int64  `json:"size_bytes"`
}

type documentPatchRequest struct {
	Title        *string `json:"title"`
	DocumentType *string `json:"document_type"`
	Description  *string `json:"description"`
	Importance   *string `json:"importance"`
	SizeBytes    *int64  `json:"size_bytes"`
}

type documentStatusRequest struct {
	Status string `json:"status"`
}

// CreateDocument drafts a new document at the initial version.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		doc, err := svc.Create(c.UserContext(), service.DocumentInput{
			Title:        req.Title,
			DocumentType: req.DocumentType,
			Description:  req.Description,
			Importance:   req.Importance,
			SizeBytes:    req.SizeBytes,
		})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments pages the document library, optionally filtered by status.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		status := c.Query("status")
		if status != "" {
			if _, err := model.ParseDocumentStatus(status); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", err.Error())
			}
		}

		res, err := svc.List(c.UserContext(), service.DocumentFilter{
			Status: status,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument returns a single document by id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument applies a partial content update, bumping the minor version.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req documentPatchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Importance != nil {
			if _, err := model.ParseImportance(*req.Importance); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_IMPORTANCE", err.Error())
			}
		}

		doc, err := svc.Update(c.UserContext(), id, service.DocumentPatch{
			Title:        req.Title,
			DocumentType: req.DocumentType,
			Description:  req.Description,
			Importance:   req.Importance,
			SizeBytes:    req.SizeBytes,
		})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(doc)
	}
}

// SetDocumentStatus advances the workflow status. The workflow only moves
// forward; approval bumps the major version.
func SetDocumentStatus(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req documentStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		status, err := model.ParseDocumentStatus(req.Status)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", err.Error())
		}

		doc, err := svc.SetStatus(c.UserContext(), id, status)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document; absent ids still return 204.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
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
