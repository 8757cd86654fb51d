package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseapi/internal/service"
	"caseapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, objects storage.Storage, evSvc service.EvidenceService, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(objects))
	app.Get("/healthz", Liveness())

	app.Post("/evidence", UploadEvidence(evSvc))
	app.Get("/evidence", ListEvidence(evSvc))
	app.Get("/evidence/categories", ListCategories(evSvc))
	app.Get("/evidence/:id", GetEvidence(evSvc))
	app.Get("/evidence/:id/download", DownloadEvidence(evSvc))
	app.Delete("/evidence/:id", DeleteEvidence(evSvc))
	app.Post("/evidence/:id/retry", RetryEvidence(evSvc))

	app.Get("/case/metrics", CaseMetrics(evSvc))
	app.Post("/case/assessment", RunAssessment(evSvc))
	app.Get("/case/assessment", GetAssessment(evSvc))

	app.Post("/documents", CreateDocument(docSvc))
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Patch("/documents/:id", UpdateDocument(docSvc))
	app.Post("/documents/:id/status", SetDocumentStatus(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
}
