// @title           Freightline API
// @version         1.0
// @description     Freight order management backend - order intake, quote comparison and agent selection.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"backend/handlers"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var cronRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
	}
	if origin := os.Getenv("FRONTEND_BASE_URL"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return corsConfig
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	if err := handlers.EnsureOrderTables(db); err != nil {
		log.Fatalf("Failed to create order tables: %v", err)
	}

	emailService := services.NewEmailService(gormDB)

	frontendBaseURL := os.Getenv("FRONTEND_BASE_URL")
	if frontendBaseURL == "" {
		frontendBaseURL = "http://localhost:3000"
	}

	// Daily maintenance: drop stale sessions and flag quotes past their
	// validity date so they stop appearing in comparisons.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			cronLogger.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		if err := storage.CleanupExpiredSessions(db); err != nil {
			log.Printf("CleanupExpiredSessions failed: %v", err)
			cronLogger.Printf("CleanupExpiredSessions failed: %v", err)
		}

		n, err := storage.ExpireStaleQuotes(db)
		if err != nil {
			log.Printf("ExpireStaleQuotes failed: %v", err)
			cronLogger.Printf("ExpireStaleQuotes failed: %v", err)
		} else if n > 0 {
			log.Printf("Flagged %d quotes as expired", n)
		}

		log.Println("Daily cron cycle completed")
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// Public routes.
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/forgot-password", handlers.ForgetPasswordHandler(db, emailService, frontendBaseURL))
	r.POST("/api/reset-password", handlers.ResetPasswordHandler(db))

	// Everything below requires a live session.
	auth := r.Group("/api")
	auth.Use(handlers.AuthRequired(db))
	{
		auth.POST("/validate-session", handlers.ValidateSession(db))
		auth.POST("/logout", handlers.LogoutHandler(db))
		auth.POST("/change-password", handlers.ChangePasswordHandler(db))
		auth.GET("/navigation", handlers.GetNavigation())

		auth.POST("/insert/create-order", handlers.CreateOrder(db))
		auth.GET("/select/view-orders/:view", handlers.ViewOrders(db))
		auth.GET("/select/order/:orderNumber", handlers.GetOrder(db))
		auth.GET("/order-qr/:orderNumber", handlers.GenerateOrderQR(db, frontendBaseURL))
		auth.GET("/order-summary-pdf/:orderNumber", handlers.GenerateOrderSummaryPDF(db, frontendBaseURL))

		auth.GET("/select/view-quotes", handlers.ViewQuotes(db))
		auth.POST("/update/update-preQuotes/:variant", handlers.UpdatePreQuote(db))

		auth.POST("/update/select-agent", handlers.SelectAgent(db))
		auth.POST("/update/mark-pending", handlers.MarkPending(db))
		auth.POST("/update/cancel-order", handlers.CancelOrder(db, emailService))

		auth.GET("/export/orders-xlsx", handlers.ExportOrdersXLSX(db))
	}

	// Quote submission is an agent action.
	agent := r.Group("/api")
	agent.Use(handlers.AuthRequired(db), handlers.RequireRole(utils.RoleFreightAgent))
	{
		agent.POST("/insert/add-quote", handlers.AddQuote(db))
	}

	// Account management is admin only.
	admin := r.Group("/api")
	admin.Use(handlers.AuthRequired(db), handlers.RequireRole(utils.RoleAdmin))
	{
		admin.POST("/add-freight-agent", handlers.AddFreightAgent(db, emailService))
		admin.POST("/add-main-user", handlers.AddMainUser(db, emailService))
		admin.GET("/users", handlers.GetUsers(db))
		admin.POST("/suspend-user", handlers.SuspendUser(db))
		admin.GET("/freight-agents", handlers.GetFreightAgents(db))
		admin.GET("/activity-logs", handlers.GetActivityLogs())
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
