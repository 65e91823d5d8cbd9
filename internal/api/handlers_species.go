package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/faunadata/fauna/internal/logging"
	"github.com/faunadata/fauna/internal/species"
)

const (
	detailSpeciesNotFound = "Especie no encontrada"
	detailHabitatNotFound = "No existen especies para este hábitat"
	detailInvalidID       = "idEspecie must be an integer"
	detailStoreFailure    = "species data is unavailable"
)

func (s *APIServer) handleListSpecies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := s.store.Summaries()
		if err != nil {
			s.storeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

func (s *APIServer) handleGetSpecies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := speciesID(w, r)
		if !ok {
			return
		}
		record, err := s.store.Get(id)
		if err != nil {
			s.lookupFailure(w, r, err, detailSpeciesNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func (s *APIServer) handleSpeciesByHabitat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.store.ByHabitat(r.PathValue("habitat"))
		if err != nil {
			s.lookupFailure(w, r, err, detailHabitatNotFound)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *APIServer) handleSpeciesWithCoordinates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.store.WithCoordinates()
		if err != nil {
			s.storeFailure(w, r, err)
			return
		}
		if records == nil {
			records = []species.Species{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *APIServer) handleSpeciesHabitat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := speciesID(w, r)
		if !ok {
			return
		}
		resp, err := s.store.HabitatOf(id)
		if err != nil {
			s.lookupFailure(w, r, err, detailSpeciesNotFound)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// speciesID parses the idEspecie path value, answering 422 when it is not an integer.
func speciesID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("idEspecie"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, detailInvalidID)
		return 0, false
	}
	return id, true
}

func (s *APIServer) lookupFailure(w http.ResponseWriter, r *http.Request, err error, notFoundDetail string) {
	if errors.Is(err, species.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundDetail)
		return
	}
	s.storeFailure(w, r, err)
}

func (s *APIServer) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Species store failed")
	writeError(w, http.StatusInternalServerError, detailStoreFailure)
}
