package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
)

type Config struct {
	AppName        string `json:"app_name"`
	ListenIP       string `json:"listen_ip"`
	ListenPort     int    `json:"listen_port"`
	SessionKey     string `json:"session_key"`
	DatabasePath   string `json:"database_path"`
	TemplatesDir   string `json:"templates_dir"`
	CaptchaEnabled bool   `json:"captcha_enabled"`
}

var AppConfig Config

func LoadConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return err
	}
	AppConfig = cfg

	// Override with environment variables if present
	if envKey := os.Getenv("DAYMARK_SESSION_KEY"); envKey != "" {
		AppConfig.SessionKey = envKey
	}
	if envDB := os.Getenv("DAYMARK_DB_PATH"); envDB != "" {
		AppConfig.DatabasePath = envDB
	}

	if AppConfig.DatabasePath == "" {
		AppConfig.DatabasePath = "./daymark.db"
	}
	if AppConfig.TemplatesDir == "" {
		AppConfig.TemplatesDir = "templates"
	}

	// If no key is provided or it's the placeholder, generate a secure random one
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		log.Println("WARNING: No session key configured. Generating a random key. Sessions will be invalidated on restart.")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			return err
		}
		AppConfig.SessionKey = hex.EncodeToString(randomKey)
	}

	return nil
}
