package db

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

// DummyHash is compared against when a login email is unknown, so that
// unknown and known emails take the same time to reject.
var DummyHash string

func InitDB(dataSourceName string) {
	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		log.Fatal(err)
	}

	createTables := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL COLLATE NOCASE,
		name TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		goal_achieved INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS calendar_entries (
		day_number INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		motivation INTEGER NOT NULL DEFAULT 0,
		satisfaction INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (day_number, user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	_, err = DB.Exec(createTables)
	if err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}

	DummyHash, err = HashPassword("daymark-dummy-password")
	if err != nil {
		log.Fatalf("Error preparing dummy hash: %v", err)
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
