// Package testserver runs a complete leadboard over streamable HTTP for
// end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okfy/leadboard/internal/board"
	"github.com/okfy/leadboard/internal/config"
	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
	"github.com/okfy/leadboard/internal/mcp"
	"github.com/okfy/leadboard/internal/memory"
	"github.com/okfy/leadboard/internal/repository/mocks"
	"github.com/okfy/leadboard/internal/sqlite"
	"github.com/okfy/leadboard/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Board     *board.Board
	Generator *mocks.PhaseGenerator
}

// New starts a server with the default pipelines, preferences in an
// in-memory SQLite database and a mock phase generator.
func New(t *testing.T, people ...assignee.Person) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	directory := assignee.NewStaticDirectory(people...)
	pipelines := pipeline.NewService(memory.NewPipelineRepository(config.DefaultPipelines()...), nil)
	leads := lead.NewService(memory.NewLeadRepository(), pipelines, nil, lead.WithAssignees(directory))
	prefs := preference.NewService(sqlite.NewPreferenceRepository(db), nil)
	gen := &mocks.PhaseGenerator{}

	b := board.New(leads, pipelines, prefs, gen, nil)
	require.NoError(t, b.Start(context.Background()))

	mcpServer := mcp.NewServer(mcp.Config{Board: b, Assignees: directory, Version: "test"})
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	server := httptest.NewServer(transport.NewRouter(handler, nil))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Board: b, Generator: gen}
}

// Connect opens a client session. A non-empty operator is sent on every
// request in the operator header.
func (ts *TestServer) Connect(t *testing.T, operator string) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := &http.Client{Transport: http.DefaultTransport}
	if operator != "" {
		httpClient.Transport = headerTransport{
			base:   http.DefaultTransport,
			header: mcp.OperatorHeader,
			value:  operator,
		}
	}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type headerTransport struct {
	base   http.RoundTripper
	header string
	value  string
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(h.header, h.value)
	return h.base.RoundTrip(req)
}
