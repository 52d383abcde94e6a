package testserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/mcp"
	"github.com/okfy/leadboard/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s failed: %+v", name, res.Content)
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestHTTP_Health(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestHTTP_LeadWorkflow(t *testing.T) {
	ts := testserver.New(t, assignee.Person{ID: "u1", Name: "Mariana", Role: assignee.RoleEditor})
	session := ts.Connect(t, "Paula")

	var pipelines mcp.PipelinesResult
	callTool(t, session, "list_pipelines", map[string]any{}, &pipelines)
	require.Len(t, pipelines.Pipelines, 2)

	var created mcp.LeadResult
	callTool(t, session, "create_lead", map[string]any{
		"pipeline": "legal",
		"title":    "Processo Silva",
		"assignee": "u1",
		"data":     map[string]any{"cpf": "529.982.247-25", "target_bank": "Banco Pan"},
	}, &created)
	require.Equal(t, "TRIAGEM", created.Lead.Phase)
	require.Equal(t, "Banco Pan", created.Lead.Data.TargetBank)

	var moved mcp.LeadResult
	callTool(t, session, "advance_lead", map[string]any{"id": created.Lead.ID}, &moved)
	require.Equal(t, "ANÁLISE DO PROCESSO", moved.Lead.Phase)
	require.Len(t, moved.Lead.History, 1)
	require.Equal(t, "TRIAGEM", moved.Lead.History[0].Phase)
	require.Equal(t, "#0EA5E9", moved.Lead.History[0].Color)

	var noted mcp.LeadResult
	callTool(t, session, "add_note", map[string]any{"id": created.Lead.ID, "text": "Documentos recebidos"}, &noted)
	require.Equal(t, "Paula", noted.Lead.Notes[0].Author)

	var view mcp.BoardView
	callTool(t, session, "get_board", map[string]any{"pipeline": "legal", "query": "529.982"}, &view)
	require.Equal(t, 1, view.Columns[1].Count)
	require.Equal(t, "Mariana", view.Columns[1].Leads[0].Assignee)
}

func TestHTTP_GeneratePipeline(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t, "")

	ts.Generator.On("Generate", mock.Anything, "triagem e acordo").Return(pipeline.Proposal{
		Phases: []pipeline.Phase{
			{Name: "TRIAGEM", Color: "#0EA5E9"},
			{Name: "ACORDO", Color: "#10B981"},
		},
	}, nil).Once()

	var out mcp.GeneratePipelineResult
	callTool(t, session, "generate_pipeline", map[string]any{"pipeline": "legal", "prompt": "triagem e acordo"}, &out)
	require.Len(t, out.Pipeline.Phases, 2)
	require.Empty(t, out.Rehomed)

	p, err := ts.Board.Pipelines.Get(context.Background(), pipeline.KindLegal)
	require.NoError(t, err)
	require.Equal(t, "ACORDO", p.Phases[1].Name)
	ts.Generator.AssertExpectations(t)
}

func TestHTTP_ThemePersists(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t, "")

	var theme mcp.ThemeResult
	callTool(t, session, "toggle_theme", map[string]any{}, &theme)
	require.Equal(t, "dark", theme.Theme)

	var stored string
	require.NoError(t, ts.DB.QueryRow(`SELECT value FROM preferences WHERE key = ?`, "okfy_theme").Scan(&stored))
	require.Equal(t, "dark", stored)
}
