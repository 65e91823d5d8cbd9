package api

import "github.com/faunadata/fauna/internal/monitor"

func (s *APIServer) setupRoutes() {
	s.router.Handle("GET /health", s.handleHealth())
	s.router.Handle("GET /version", s.handleVersion())

	// Live request monitor
	s.router.Handle("GET "+monitor.StreamPath, s.broadcaster.StreamHandler())
	s.router.Handle("GET "+monitor.MonitorPath, monitor.PageHandler())
	s.router.Handle("GET /monitor/status", s.handleMonitorStatus())

	// Species catalogue
	s.router.Handle("GET /especies/listar", s.handleListSpecies())
	s.router.Handle("GET /especies/{idEspecie}", s.handleGetSpecies())
	s.router.Handle("GET /especies/habitat/{habitat}", s.handleSpeciesByHabitat())
	s.router.Handle("GET /especies/coordenadas/area", s.handleSpeciesWithCoordinates())
	s.router.Handle("GET /especies/habitat/id/{idEspecie}", s.handleSpeciesHabitat())
}
