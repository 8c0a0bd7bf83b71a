package models

import "time"

// CachedDocument records a file downloaded for offline use, backing a remote
// document record. LocalPath points into the blob store's documents
// directory.
type CachedDocument struct {
	ID          string    `json:"id"`
	TripID      string    `json:"tripId"`
	FileName    string    `json:"fileName"`
	LocalPath   string    `json:"localPath"`
	RemoteURL   string    `json:"remoteUrl"`
	ContentType string    `json:"contentType"`
	CachedAt    time.Time `json:"cachedAt"`
	FileSize    int64     `json:"fileSize"`
}

// DocumentDescriptor is the caller-supplied request to cache a document.
// Size and local path are filled in once the bytes are on disk.
type DocumentDescriptor struct {
	ID          string
	TripID      string
	FileName    string
	RemoteURL   string
	ContentType string
}
