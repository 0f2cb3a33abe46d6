package models

import "time"

type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Path         string     `json:"path"`
	Favorite     bool       `json:"favorite"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`
}
