package domain

import "time"

// Image describes a stored upload. Name is the on-disk filename, URL the
// public path it is served under.
type Image struct {
	Name         string    `json:"name"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
}
