package models

import "time"

// Category groups goals.
type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
}

// Goal is a single objective, optionally filed under a category and ordered
// within the user's list.
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	Description  string    `json:"description"`
	CategoryID   *int64    `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	Completed    bool      `json:"completed"`
	DueDate      *Date     `json:"due_date"`
	CreatedAt    time.Time `json:"created_at"`
	Order        int       `json:"order"`
}
