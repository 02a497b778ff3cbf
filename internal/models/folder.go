package models

import "time"

// Folder owns its tags as plain values; tags refer back only by FolderID.
type Folder struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	PinCount  int       `json:"pinCount"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []Tag     `json:"tags"`
}

type Tag struct {
	ID        int64     `json:"id"`
	FolderID  int64     `json:"folderId"`
	Name      string    `json:"tagName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Site is a bookmark stored in a folder.
type Site struct {
	ID        int64     `json:"id"`
	FolderID  int64     `json:"folderId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
