// Package models defines the core data structures shared by the builders,
// the HTTP handlers and the project list store.
package models

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Asset is a file or folder entry in a project hierarchy. Metadata is keyed
// by handler id.
type Asset struct {
	URI      string                      `json:"uri" yaml:"uri"`
	Metadata map[string]*HandlerMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Children []Asset                     `json:"children,omitempty" yaml:"children,omitempty"`
}

type HandlerMetadata struct {
	Libraries []DependencyEntry `json:"libraries,omitempty" yaml:"libraries,omitempty"`
	Inputs    []DependencyEntry `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs   []DependencyEntry `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// DependencyEntry is the raw shape a handler reports for a single relationship.
type DependencyEntry struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

type Dependency struct {
	ID        string `json:"id" yaml:"id"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Direction string `json:"direction"`
}
