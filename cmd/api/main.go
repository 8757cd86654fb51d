package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caseapi/internal/annotator"
	"caseapi/internal/catalog"
	"caseapi/internal/config"
	handlers "caseapi/internal/http/handler"
	"caseapi/internal/http/middleware"
	"caseapi/internal/lifecycle"
	"caseapi/internal/model"
	"caseapi/internal/otel"
	"caseapi/internal/report"
	"caseapi/internal/service"
	"caseapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	var evidenceSeed []model.EvidenceRecord
	var documentSeed []model.DocumentRecord
	if cfg.SeedDemoData {
		evidenceSeed = model.SeedEvidence()
		documentSeed = model.SeedDocuments()
	}

	evidenceStore, err := catalog.NewStore(evidenceSeed...)
	if err != nil {
		log.Fatalf("failed to build evidence catalog: %v", err)
	}
	documentStore, err := catalog.NewStore(documentSeed...)
	if err != nil {
		log.Fatalf("failed to build document library: %v", err)
	}

	var annot annotator.Annotator
	switch cfg.Annotator.Mode {
	case "remote":
		remote, err := annotator.NewRemote(cfg.Annotator.Endpoint)
		if err != nil {
			log.Fatalf("failed to initialize annotator: %v", err)
		}
		annot = remote
	default:
		annot = &annotator.Simulated{Delay: time.Duration(cfg.Annotator.DelayMS) * time.Millisecond}
	}

	manager := lifecycle.NewManager(evidenceStore, annot, time.Duration(cfg.Annotator.TimeoutSec)*time.Second)
	defer manager.Wait()

	evSvc := service.NewEvidenceService(evidenceStore, objStore, manager, &annotator.SimulatedAssessor{})
	docSvc := service.NewDocumentService(documentStore)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	// Catalog gauges plus per-request counters share one registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(report.NewCollector(evidenceStore))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, objStore, evSvc, docSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
