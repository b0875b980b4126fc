package main

import (
	"fmt"
	"log"
	"net/http"

	"daymark/auth"
	"daymark/config"
	"daymark/db"
	"daymark/handlers"
	"daymark/i18n"

	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file can supply DAYMARK_SESSION_KEY / DAYMARK_DB_PATH; absence is fine
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := i18n.LoadTranslations("i18n"); err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	auth.InitStore()

	db.InitDB(config.AppConfig.DatabasePath)
	defer db.DB.Close()

	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Register application handlers
	handlers.RegisterHandlers(mux)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	log.Printf("Server starting on %s (%s)", addr, config.AppConfig.AppName)

	// CSRF Protection
	// We need a 32-byte key. Using session key for now, assuming it's suitable.
	// In production, this should be a separate key.
	csrfMiddleware := csrf.Protect(
		[]byte(config.AppConfig.SessionKey),
		csrf.Secure(false), // Set to true in production with HTTPS
		csrf.Path("/"),
	)

	if err := http.ListenAndServe(addr, csrfMiddleware(mux)); err != nil {
		log.Fatal(err)
	}
}
