package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xavierca1/material-portal/internal/infra/http/handlers"
	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
	"github.com/xavierca1/material-portal/internal/infra/integration/groq"
	"github.com/xavierca1/material-portal/internal/infra/mail"
	"github.com/xavierca1/material-portal/internal/infra/queue"
	"github.com/xavierca1/material-portal/internal/infra/storage"
	"github.com/xavierca1/material-portal/internal/usecase"
)

func main() {
	godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	dataDir := envOr("DATA_DIR", "data")
	store, err := storage.NewStore(dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data dir")
	}

	// 1. Repositories
	userRepo := storage.NewUserRepository(store)
	leadRepo := storage.NewLeadRepository(store)

	// 2. Gateways and adapters
	groqClient := groq.NewClient(os.Getenv("GROQ_API_KEY"), os.Getenv("GROQ_URL"))
	classifier := groq.NewClassifier(groqClient, log)
	if !groqClient.HasCredential() {
		// Missing credential is recoverable: every classification answers
		// with the canned fallback instead of refusing to start.
		log.Warn().Msg("GROQ_API_KEY not set, classifier will only serve fallback assessments")
	}

	var mailSender *mail.EmailSender
	if os.Getenv("MAIL_HOST") != "" {
		mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
		mailSender = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), mailPort,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			envOr("MAIL_FROM", "no-reply@materialsolutions.in"),
		)
	}

	// 3. Queue + worker (optional: without a broker, quote emails go out
	// best-effort from the intake use case itself)
	var events usecase.EventPublisherInterface
	var rabbitConn *queue.RabbitMQ
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbitConn, err = queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rabbitConn.Close()

		events = queue.NewProducer(rabbitConn.Conn, rabbitConn.Ch)

		var deliverer queue.EmailDeliverer
		if mailSender != nil {
			deliverer = mailSender
		}
		worker := queue.NewWorker(rabbitConn.Ch, deliverer, log)
		go worker.Start(queue.QueueName)
	}

	// 4. UseCases
	registerUC := usecase.NewRegisterUserUseCase(userRepo)
	authUC := usecase.NewAuthenticateUserUseCase(userRepo)

	var mailService usecase.EmailService
	if mailSender != nil {
		mailService = mailSender
	}
	createLeadUC := usecase.NewCreateLeadUseCase(userRepo, leadRepo, classifier, events, mailService, log)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo)
	decideUC := usecase.NewDecideLeadUseCase(leadRepo, events, log)
	replyUC := usecase.NewAdminReplyUseCase(leadRepo, events, log)
	messageUC := usecase.NewAppendMessageUseCase(leadRepo)
	resetUC := usecase.NewResetDataUseCase(store, log)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(registerUC, authUC)
	leadHandler := handlers.NewLeadHandler(createLeadUC, listLeadsUC, decideUC, messageUC)
	adminHandler := handlers.NewAdminHandler(listLeadsUC, replyUC, resetUC)

	var healthHandler *handlers.HealthHandler
	if rabbitConn != nil {
		healthHandler = handlers.NewHealthHandler(dataDir, rabbitConn.Conn)
	} else {
		healthHandler = handlers.NewHealthHandler(dataDir, nil)
	}

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.AdminHeader},
	}))

	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)

	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads", leadHandler.HandleList)
	r.Post("/leads/{id}/decision", leadHandler.HandleDecision)
	r.Post("/leads/{id}/messages", leadHandler.HandleMessage)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(envOr("ADMIN_PASSWORD", "admin123")))
		r.Get("/leads", adminHandler.HandleList)
		r.Post("/leads/{id}/reply", adminHandler.HandleReply)
		r.Get("/stats", adminHandler.HandleStats)
		r.Post("/reset", adminHandler.HandleReset)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Info().Str("port", port).Msg("🔥 Material Portal API listening")
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
