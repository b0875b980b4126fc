package models

import "time"

// User is a registered account. Name, Type and Goal are free-form profile
// fields filled in at registration; GoalAchieved is set from the day-30 prompt.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Goal         string    `json:"goal"`
	PasswordHash string    `json:"-"`
	GoalAchieved bool      `json:"goal_achieved"`
	CreatedAt    time.Time `json:"created_at"`
}

// DayEntry is one saved calendar day. Identity is (Day, UserID); scores are
// 0 when a day has not been filled in.
type DayEntry struct {
	Day          int `json:"day"`
	UserID       int `json:"user_id"`
	Motivation   int `json:"motivation"`
	Satisfaction int `json:"satisfaction"`
}
