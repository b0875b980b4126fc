package db

import (
	"errors"

	"daymark/models"

	"github.com/mattn/go-sqlite3"
)

// ErrEmailTaken is returned by CreateUser when the email is already
// registered. The UNIQUE constraint is the only duplicate check; there is
// no read-then-insert window. The column collates NOCASE so uniqueness and
// the login lookup agree on what counts as the same email.
var ErrEmailTaken = errors.New("email already registered")

func CreateUser(email, name, userType, goal, passwordHash string) (models.User, error) {
	result, err := DB.Exec(
		"INSERT INTO users (email, name, type, goal, password_hash) VALUES (?, ?, ?, ?, ?)",
		email, name, userType, goal, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return GetUserByID(int(id))
}

func GetUserByEmail(email string) (models.User, error) {
	var u models.User
	err := DB.QueryRow(
		"SELECT id, email, name, type, goal, password_hash, goal_achieved, created_at FROM users WHERE LOWER(email) = LOWER(?)",
		email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Type, &u.Goal, &u.PasswordHash, &u.GoalAchieved, &u.CreatedAt)
	return u, err
}

func GetUserByID(id int) (models.User, error) {
	var u models.User
	err := DB.QueryRow(
		"SELECT id, email, name, type, goal, password_hash, goal_achieved, created_at FROM users WHERE id = ?",
		id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Type, &u.Goal, &u.PasswordHash, &u.GoalAchieved, &u.CreatedAt)
	return u, err
}

func SetGoalAchieved(userID int, achieved bool) error {
	_, err := DB.Exec("UPDATE users SET goal_achieved = ? WHERE id = ?", achieved, userID)
	return err
}

// UpsertDayEntry saves one day's scores. The conflict clause makes a repeat
// save of the same day an overwrite, atomically in the storage layer.
func UpsertDayEntry(entry models.DayEntry) error {
	_, err := DB.Exec(`
		INSERT INTO calendar_entries (day_number, user_id, motivation, satisfaction)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (day_number, user_id) DO UPDATE
			SET motivation = excluded.motivation, satisfaction = excluded.satisfaction`,
		entry.Day, entry.UserID, entry.Motivation, entry.Satisfaction)
	return err
}

func EntriesForUser(userID int) ([]models.DayEntry, error) {
	rows, err := DB.Query(
		"SELECT day_number, user_id, motivation, satisfaction FROM calendar_entries WHERE user_id = ? ORDER BY day_number",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DayEntry
	for rows.Next() {
		var e models.DayEntry
		if err := rows.Scan(&e.Day, &e.UserID, &e.Motivation, &e.Satisfaction); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
