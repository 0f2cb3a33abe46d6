// Package projectlist persists the user's list of projects in a JSON file.
package projectlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/statwrap/core/internal/models"
)

const (
	DefaultFile = ".statwrap-projects.json"

	// undefinedProjectName is used for ordering projects that have no name.
	undefinedProjectName = "project"
)

var (
	ErrInvalidProject  = errors.New("invalid project")
	ErrProjectNotFound = errors.New("project not found")
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the projects ordered case-insensitively by name. A missing file
// is an empty list.
func (s *Store) Load() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return sortName(projects[i]) < sortName(projects[j])
	})
	return projects, nil
}

// Append adds the project unless one with the same id or path is already
// listed. It reports whether the file was changed.
func (s *Store) Append(project *models.Project) (bool, error) {
	if err := Validate(project); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read()
	if err != nil {
		return false, err
	}

	for _, p := range projects {
		if p.ID == project.ID || p.Path == project.Path {
			return false, nil
		}
	}

	projects = append(projects, *project)
	if err := s.write(projects); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFavorite flips the favorite flag of the project with the given id.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read()
	if err != nil {
		return false, err
	}

	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		projects[i].Favorite = !projects[i].Favorite
		if err := s.write(projects); err != nil {
			return false, err
		}
		return projects[i].Favorite, nil
	}

	return false, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// Validate checks the fields required to list a project.
func Validate(project *models.Project) error {
	if project == nil {
		return fmt.Errorf("%w: the project is empty or undefined", ErrInvalidProject)
	}
	if strings.TrimSpace(project.ID) == "" {
		return fmt.Errorf("%w: the project ID is required, but is currently empty", ErrInvalidProject)
	}
	if strings.TrimSpace(project.Path) == "" {
		return fmt.Errorf("%w: the project path is required, but is currently empty", ErrInvalidProject)
	}
	return nil
}

// NewID returns a fresh project identifier.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) read() ([]models.Project, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project list: %w", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project list: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (s *Store) write(projects []models.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal project list: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project list: %w", err)
	}
	return nil
}

func sortName(p models.Project) string {
	if p.Name == "" {
		return undefinedProjectName
	}
	return strings.ToLower(p.Name)
}
