package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/faunadata/fauna/internal/apitypes"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/faunadata/fauna/internal/species"
)

func (c *APIClient) Version(ctx context.Context) (*apitypes.VersionResponse, error) {
	var response apitypes.VersionResponse
	if err := c.get(ctx, "/version", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *APIClient) MonitorStatus(ctx context.Context) (*apitypes.MonitorStatusResponse, error) {
	var response apitypes.MonitorStatusResponse
	if err := c.get(ctx, "/monitor/status", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *APIClient) ListSpecies(ctx context.Context) ([]species.Summary, error) {
	var response []species.Summary
	if err := c.get(ctx, "/especies/listar", &response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *APIClient) GetSpecies(ctx context.Context, id int) (*species.Species, error) {
	var response species.Species
	if err := c.get(ctx, "/especies/"+strconv.Itoa(id), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *APIClient) SpeciesByHabitat(ctx context.Context, habitat string) ([]species.Species, error) {
	var response []species.Species
	if err := c.get(ctx, "/especies/habitat/"+url.PathEscape(habitat), &response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *APIClient) SpeciesWithCoordinates(ctx context.Context) ([]species.Species, error) {
	var response []species.Species
	if err := c.get(ctx, "/especies/coordenadas/area", &response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *APIClient) HabitatOf(ctx context.Context, id int) (*species.HabitatResponse, error) {
	var response species.HabitatResponse
	if err := c.get(ctx, "/especies/habitat/id/"+strconv.Itoa(id), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// StreamRequestLogs follows the server's request log until ctx ends, the
// server closes the stream, or handle returns false. Malformed events are
// passed to onSkip, which may be nil.
func (c *APIClient) StreamRequestLogs(ctx context.Context, handle func(monitor.LogEntry) bool, onSkip func(error)) error {
	return c.stream(ctx, monitor.StreamPath, func(data string) (bool, error) {
		var entry monitor.LogEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return false, fmt.Errorf("failed to parse log entry: %w", err)
		}
		return !handle(entry), nil
	}, onSkip)
}
