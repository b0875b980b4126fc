package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config*.json")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temporary file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temporary file: %v", err)
	}
	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"app_name": "TestApp",
		"listen_ip": "127.0.0.1",
		"listen_port": 9090,
		"session_key": "test-session-key",
		"database_path": "./test.db",
		"templates_dir": "tpl",
		"captcha_enabled": true
	}`)

	if err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.AppName != "TestApp" {
		t.Errorf("Expected AppName 'TestApp', got '%s'", AppConfig.AppName)
	}
	if AppConfig.ListenIP != "127.0.0.1" {
		t.Errorf("Expected ListenIP '127.0.0.1', got '%s'", AppConfig.ListenIP)
	}
	if AppConfig.ListenPort != 9090 {
		t.Errorf("Expected ListenPort 9090, got %d", AppConfig.ListenPort)
	}
	if AppConfig.SessionKey != "test-session-key" {
		t.Errorf("Expected SessionKey 'test-session-key', got '%s'", AppConfig.SessionKey)
	}
	if AppConfig.DatabasePath != "./test.db" {
		t.Errorf("Expected DatabasePath './test.db', got '%s'", AppConfig.DatabasePath)
	}
	if !AppConfig.CaptchaEnabled {
		t.Error("Expected CaptchaEnabled true")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `{"app_name": "Bare", "session_key": "k"}`)

	if err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if AppConfig.DatabasePath != "./daymark.db" {
		t.Errorf("Expected default database path, got '%s'", AppConfig.DatabasePath)
	}
	if AppConfig.TemplatesDir != "templates" {
		t.Errorf("Expected default templates dir, got '%s'", AppConfig.TemplatesDir)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `{"session_key": "file-key", "database_path": "./file.db"}`)

	t.Setenv("DAYMARK_SESSION_KEY", "env-key")
	t.Setenv("DAYMARK_DB_PATH", "./env.db")

	if err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if AppConfig.SessionKey != "env-key" {
		t.Errorf("Expected env override for session key, got '%s'", AppConfig.SessionKey)
	}
	if AppConfig.DatabasePath != "./env.db" {
		t.Errorf("Expected env override for database path, got '%s'", AppConfig.DatabasePath)
	}
}

func TestLoadConfigGeneratesSessionKey(t *testing.T) {
	path := writeTempConfig(t, `{"session_key": "CHANGE_ME_IN_PRODUCTION"}`)

	if err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		t.Errorf("Expected a generated session key, got '%s'", AppConfig.SessionKey)
	}
}

func TestLoadConfigInvalidPath(t *testing.T) {
	if err := LoadConfig("non-existent-path.json"); err == nil {
		t.Error("LoadConfig with non-existent path should have failed")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{ "invalid": json }`)
	if err := LoadConfig(path); err == nil {
		t.Error("LoadConfig with invalid JSON should have failed")
	}
}
