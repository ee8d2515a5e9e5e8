// Package profile defines the user profile model and the feature extraction
// used by scoring and search-query generation.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Profile is the user's resume data. It is owned by the user and read-only
// to the engine. The JSON shape matches the resume documents produced by the
// resume manager.
type Profile struct {
	Skills     []string           `json:"skills"`
	Education  []EducationRecord  `json:"education"`
	Experience []ExperienceRecord `json:"professional_experience"`
	Projects   []ProjectRecord    `json:"projects"`
	GPA        float64            `json:"gpa,omitempty"`
}

type EducationRecord struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Level       string `json:"level,omitempty"`
	InProgress  bool   `json:"in_progress,omitempty"`
}

type ExperienceRecord struct {
	Role         string   `json:"role"`
	Organization string   `json:"organization"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements,omitempty"`
}

type ProjectRecord struct {
	Title        string   `json:"title"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Source provides the profile for a given user.
type Source interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// FileSource loads the profile from a JSON file on disk. The engine watches a
// single user per process, so one file is enough.
type FileSource struct {
	Path string
}

func (s *FileSource) GetProfile(_ context.Context, _ string) (*Profile, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file %q: %w", s.Path, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file %q: %w", s.Path, err)
	}

	return &p, nil
}
