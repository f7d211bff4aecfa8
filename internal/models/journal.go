package models

import "time"

// Journal entities form a tree: topic -> category -> subcategory, with notes
// attachable at any level (or at the root). Ownership hangs off the topic for
// categories and subcategories; notes carry their own user id.

type JournalTopic struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type JournalCategory struct {
	ID      int64  `json:"id"`
	TopicID int64  `json:"temaId"`
	Name    string `json:"name"`
}

type JournalSubcategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoriaId"`
	Name       string `json:"name"`
}

// JournalNote is attached to at most one tree node; all three references nil
// means it lives at the root.
type JournalNote struct {
	ID            int64
	UserID        int64
	Content       string
	CreatedAt     time.Time
	TopicID       *int64
	CategoryID    *int64
	SubcategoryID *int64
}
