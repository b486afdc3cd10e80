package main

import (
	"os"
	"time"

	"github.com/probuild/sitereport-backend/internal"
	"github.com/probuild/sitereport-backend/internal/config"
	"github.com/probuild/sitereport-backend/internal/handlers"
	"github.com/probuild/sitereport-backend/internal/renderer"
	"github.com/probuild/sitereport-backend/internal/services"
	"github.com/probuild/sitereport-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Server.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := internal.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer internal.CloseDB(db)

	var artifacts handlers.ArtifactStore
	if cfg.GCS.BucketName != "" {
		gcsClient, err := storage.NewGCSClient(cfg.GCS.BucketName, cfg.GCS.CredentialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize GCS client")
		}
		defer gcsClient.Close()
		artifacts = gcsClient
		log.Info().Str("bucket", cfg.GCS.BucketName).Msg("export artifact storage enabled")
	} else {
		log.Info().Msg("no GCS bucket configured, export files will not be persisted")
	}

	templateService := services.NewTemplateService(db)
	reportService := services.NewReportService(db)
	pageService := services.NewPageService(db)
	exportService := services.NewExportService(db)

	pdfRenderer := renderer.NewChromeRenderer(time.Duration(cfg.Renderer.TimeoutSeconds) * time.Second)

	templateHandler := handlers.NewTemplateHandler(templateService)
	reportHandler := handlers.NewReportHandler(reportService)
	pageHandler := handlers.NewPageHandler(pageService)
	exportHandler := handlers.NewExportHandler(reportService, exportService, pdfRenderer, artifacts)

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(r, templateHandler, reportHandler, pageHandler, exportHandler)

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
