package fauna

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faunadata/fauna/internal/api"
	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/faunadata/fauna/internal/constants"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/faunadata/fauna/internal/species"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFaunaServer(t *testing.T) *httptest.Server {
	t.Helper()
	dataFile := filepath.Join(t.TempDir(), "species_db.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[
		{"id": 1, "nombre": "Oso de anteojos", "imagen": "oso.jpg", "habitat": "Andes", "alimentacion": "Omnívora", "coordenadas": {"lat": -0.22, "lng": -78.52}},
		{"id": 2, "nombre": "Iguana marina", "imagen": "iguana.jpg", "habitat": "Islas Galápagos", "alimentacion": "Herbívora", "coordenadas": {"lat": -0.95, "lng": -90.96}}
	]`), 0o644))

	b := monitor.NewBroadcaster(monitor.Options{Logger: zerolog.Nop()})
	server := api.NewServer(api.Options{
		Store:       species.NewFileStore(dataFile),
		Broadcaster: b,
		Logger:      zerolog.Nop(),
	})
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(func() {
		b.Close()
		srv.Close()
	})
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSpeciesCommands(t *testing.T) {
	srv := newFaunaServer(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		err      string
	}{
		{
			name:     "list",
			args:     []string{"species", "list"},
			contains: []string{"Oso de anteojos", "Andes", "Iguana marina"},
		},
		{
			name:     "get",
			args:     []string{"species", "get", "2"},
			contains: []string{`"nombre": "Iguana marina"`, `"alimentacion": "Herbívora"`},
		},
		{
			name:     "habitat is case-insensitive",
			args:     []string{"especies", "habitat", "andes"},
			contains: []string{`"id": 1`},
		},
		{
			name:     "habitat of",
			args:     []string{"species", "habitat-of", "2"},
			contains: []string{"Islas Galápagos"},
		},
		{
			name:     "locations",
			args:     []string{"species", "locations"},
			contains: []string{"-78.5200", "-90.9600"},
		},
		{
			name: "unknown id",
			args: []string{"species", "get", "99"},
			err:  "Especie no encontrada",
		},
		{
			name: "non-integer id",
			args: []string{"species", "get", "abc"},
			err:  "species id must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--server", srv.URL}, tt.args...)...)
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestServerFlagFromEnv(t *testing.T) {
	srv := newFaunaServer(t)
	t.Setenv(constants.EnvVarServerURL, srv.URL)

	out, err := execute(t, "species", "habitat-of", "1")
	require.NoError(t, err)
	assert.Equal(t, "Andes\n", out)
}

func TestStatusCommand(t *testing.T) {
	srv := newFaunaServer(t)
	_, err := execute(t, "--server", srv.URL, "status")
	assert.NoError(t, err)

	_, err = execute(t, "--server", "http://127.0.0.1:1", "status")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	srv := newFaunaServer(t)

	out, err := execute(t, "--server", srv.URL, "version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("fauna %s\nfaunad %s\n", constants.Version, constants.Version), out)

	out, err = execute(t, "--server", "http://127.0.0.1:1", "version", "--client")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("fauna %s\n", constants.Version), out)
}

func TestWatch_PlainPrintsEachRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, `data: {"timestamp":"10:00:00","method":"GET","url":"/especies/listar","client":"1.2.3.4","status":200,"latency":"0.0010s"}`+"\n\n")
		fmt.Fprint(w, `data: {"timestamp":"10:00:01","method":"GET","url":"/especies/99","client":"1.2.3.4","status":404,"latency":"0.0020s"}`+"\n\n")
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "--server", srv.URL, "watch", "--plain", "--no-retry")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "/especies/listar")
	assert.Contains(t, lines[1], "/especies/99")
	assert.Contains(t, lines[1], "404")
}

func TestWatch_TableKeepsNewestRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 3; i++ {
			fmt.Fprintf(w, "data: {\"method\":\"GET\",\"url\":\"/row/%d\",\"status\":200}\n\n", i)
		}
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	w := &watcher{
		client:     apiclient.New(srv.URL),
		out:        &out,
		feed:       monitor.NewFeed(2),
		retryDelay: time.Millisecond,
	}
	require.NoError(t, w.run(context.Background()))

	frames := strings.Split(out.String(), clearScreen)
	last := frames[len(frames)-1]
	assert.Contains(t, last, "/row/2")
	assert.Contains(t, last, "/row/1")
	assert.NotContains(t, last, "/row/0")
	assert.Equal(t, 2, w.feed.Len())
}

func TestWatch_RetriesUntilCancelled(t *testing.T) {
	connected := make(chan struct{}, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case connected <- struct{}{}:
		default:
		}
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		client:     apiclient.New(srv.URL),
		out:        &bytes.Buffer{},
		feed:       monitor.NewFeed(monitor.DefaultFeedRows),
		plain:      true,
		retry:      true,
		retryDelay: 5 * time.Millisecond,
	}

	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-connected:
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not reconnect")
		}
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
