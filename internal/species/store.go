package species

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/copier"
)

var ErrNotFound = errors.New("species not found")

// FileStore serves the catalogue from a JSON array on disk. The file is read
// on every call so edits show up without a restart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// All returns every record in file order.
func (s *FileStore) All() ([]Species, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species data %s: %w", s.path, err)
	}

	var records []Species
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse species data %s: %w", s.path, err)
	}
	return records, nil
}

// Summaries returns the id, name and habitat of every record.
func (s *FileStore) Summaries() ([]Summary, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(records))
	if err := copier.Copy(&summaries, &records); err != nil {
		return nil, fmt.Errorf("failed to build species summaries: %w", err)
	}
	return summaries, nil
}

// Get returns the record with the given ID or ErrNotFound.
func (s *FileStore) Get(id int) (Species, error) {
	records, err := s.All()
	if err != nil {
		return Species{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return Species{}, ErrNotFound
}

// ByHabitat returns the records whose habitat matches, ignoring case.
// ErrNotFound is returned when nothing matches.
func (s *FileStore) ByHabitat(habitat string) ([]Species, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}

	var matches []Species
	for _, r := range records {
		if strings.EqualFold(r.Habitat, habitat) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches, nil
}

// WithCoordinates returns the records that carry a location. Every record in
// the catalogue has one, so this is the full list.
func (s *FileStore) WithCoordinates() ([]Species, error) {
	return s.All()
}

// HabitatOf returns the habitat of the record with the given ID.
func (s *FileStore) HabitatOf(id int) (HabitatResponse, error) {
	record, err := s.Get(id)
	if err != nil {
		return HabitatResponse{}, err
	}
	return HabitatResponse{SpeciesID: record.ID, Habitat: record.Habitat}, nil
}
