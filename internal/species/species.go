package species

// Coordinates is where a species was recorded.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Species is one catalogue record.
type Species struct {
	ID          int         `json:"id"`
	Name        string      `json:"nombre"`
	Image       string      `json:"imagen"`
	Habitat     string      `json:"habitat"`
	Diet        string      `json:"alimentacion"`
	Coordinates Coordinates `json:"coordenadas"`
}

// Summary is the listing view of a record.
type Summary struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Habitat string `json:"habitat"`
}

// HabitatResponse pairs a species ID with its habitat.
type HabitatResponse struct {
	SpeciesID int    `json:"idEspecie"`
	Habitat   string `json:"habitat"`
}
