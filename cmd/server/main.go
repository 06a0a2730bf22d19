package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/catalog"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/config"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/content"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/gateway"
	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/handlers"
)

func main() {
	// 1. Load Configuration (logging level depends on it)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	handlerOpts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 2. Gateway client and in-memory stores
	gw := gateway.New(gateway.Config{
		BaseURL: cfg.Gateway.URL,
		APIKey:  cfg.Gateway.APIKey,
		Bucket:  cfg.Gateway.Bucket,
	})

	catalogStore := catalog.NewStore(gw)
	contentStore := content.NewStore(gw)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelLoad()
	if err := catalogStore.Load(loadCtx); err != nil {
		// The site still serves with an empty catalog; the gateway may
		// simply not be up yet.
		slog.Error("Failed to load catalog from gateway", "error", err)
	}
	if err := contentStore.Load(loadCtx); err != nil {
		slog.Error("Failed to load site content from gateway; serving defaults", "error", err)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("inc", func(i int) int { return i + 1 })
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	validate := validator.New()

	// 5. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		Catalog:      catalogStore,
		Content:      contentStore,
		Gateway:      gw,
		Templates:    templates,
		SessionStore: sessionStore,
		Validate:     validate,
	}
	adminHandler := &handlers.AdminHandler{
		Gateway:      gw,
		Catalog:      catalogStore,
		Content:      contentStore,
		SessionStore: sessionStore,
		Templates:    templates,
		Validate:     validate,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter (1 request per minute) on the contact form
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("POST /banner/dismiss", homeHandler.DismissBanner)
	mux.HandleFunc("POST /contact", rateLimiter.Middleware(homeHandler.SubmitContact))

	// Admin login/logout
	mux.HandleFunc("/admin", adminHandler.Dashboard)
	mux.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	mux.HandleFunc("/admin/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.Products))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("POST /admin/products/update", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))
	mux.HandleFunc("POST /admin/products/visibility", adminHandler.AuthMiddleware(adminHandler.ToggleVisibility))
	mux.HandleFunc("/admin/products/reorder", adminHandler.AuthMiddleware(adminHandler.ReorderForm))
	mux.HandleFunc("POST /admin/products/reorder/save", adminHandler.AuthMiddleware(adminHandler.SaveReorder))

	mux.HandleFunc("/admin/homepage", adminHandler.AuthMiddleware(adminHandler.HomepageForm))
	mux.HandleFunc("POST /admin/homepage", adminHandler.AuthMiddleware(adminHandler.UpdateHomepage))
	mux.HandleFunc("POST /admin/homepage/image", adminHandler.AuthMiddleware(adminHandler.UploadHomepageImage))

	mux.HandleFunc("/admin/settings", adminHandler.AuthMiddleware(adminHandler.SettingsForm))
	mux.HandleFunc("POST /admin/settings/logo", adminHandler.AuthMiddleware(adminHandler.UpdateLogo))
	mux.HandleFunc("POST /admin/settings/background", adminHandler.AuthMiddleware(adminHandler.UpdateBackground))
	mux.HandleFunc("POST /admin/settings/social", adminHandler.AuthMiddleware(adminHandler.UpdateSocialLinks))
	mux.HandleFunc("POST /admin/settings/contact", adminHandler.AuthMiddleware(adminHandler.UpdateContactInfo))
	mux.HandleFunc("POST /admin/settings/hours", adminHandler.AuthMiddleware(adminHandler.UpdateHours))
	mux.HandleFunc("POST /admin/settings/categories/add", adminHandler.AuthMiddleware(adminHandler.AddCategory))
	mux.HandleFunc("POST /admin/settings/categories/delete", adminHandler.AuthMiddleware(adminHandler.RemoveCategory))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		// Fix for "Forbidden - origin invalid": Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "gateway", cfg.Gateway.URL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
