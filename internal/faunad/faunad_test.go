package faunad

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/faunadata/fauna/internal/config"
	"github.com/faunadata/fauna/internal/constants"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.ServerConfig {
	t.Helper()
	dataFile := filepath.Join(t.TempDir(), "species_db.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[
		{"id": 1, "nombre": "Oso de anteojos", "imagen": "oso.jpg", "habitat": "Andes", "alimentacion": "Omnívora", "coordenadas": {"lat": -0.22, "lng": -78.52}}
	]`), 0o644))

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = config.Duration(2 * time.Second)
	cfg.Species.DataFile = dataFile
	return cfg
}

func TestServe_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, cfg, zerolog.Nop(), func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	client := apiclient.New("http://" + addr.String())

	entries := make(chan monitor.LogEntry, 4)
	streamDone := make(chan error, 1)
	go func() {
		streamDone <- client.StreamRequestLogs(context.Background(), func(e monitor.LogEntry) bool {
			entries <- e
			return true
		}, nil)
	}()

	require.Eventually(t, func() bool {
		status, err := client.MonitorStatus(context.Background())
		return err == nil && status.Viewers == 1
	}, 2*time.Second, 20*time.Millisecond)

	record, err := client.GetSpecies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Oso de anteojos", record.Name)

	// The /monitor/status polls above are published too; wait for the species request.
	deadline := time.After(2 * time.Second)
	for found := false; !found; {
		select {
		case e := <-entries:
			found = e.URL == "/especies/1"
			if found {
				assert.Equal(t, 200, e.Status)
				assert.Equal(t, "127.0.0.1", e.Client)
			}
		case <-deadline:
			t.Fatal("species request was not streamed")
		}
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case err := <-streamDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream was not closed on shutdown")
	}
}

func TestServeOptions_Apply(t *testing.T) {
	cfg := testConfig(t)
	opts := &serveOptions{host: "localhost", port: "9001", dataFile: "x.json", logLevel: "debug"}
	require.NoError(t, opts.apply(cfg))

	assert.Equal(t, "localhost:9001", cfg.Addr())
	assert.Equal(t, "x.json", cfg.Species.DataFile)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Error(t, (&serveOptions{port: "abc"}).apply(testConfig(t)))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faunad.toml")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	for _, name := range []string{constants.EnvVarHost, constants.EnvVarPort, constants.EnvVarLogLevel, constants.EnvVarLogFormat, constants.EnvVarDataFile, constants.EnvVarQueueLimit} {
		t.Setenv(name, "")
	}
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cmd = NewRootCmd()
	cmd.SetArgs([]string{"config", "init", path})
	assert.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = NewRootCmd()
	cmd.SetArgs([]string{"config", "init", "--force", path})
	assert.NoError(t, cmd.Execute())
}

func TestConfigShow(t *testing.T) {
	t.Setenv(constants.EnvVarConfigDir, t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv(constants.EnvVarPort, "9300")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "show", "-c", filepath.Join(t.TempDir(), "absent.yaml"), "-o", "json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"port": "9300"`)
	assert.Contains(t, out.String(), `"queueLimit": 1024`)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "faunad "+constants.Version+"\n", out.String())
}
