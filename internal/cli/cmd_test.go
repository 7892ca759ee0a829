package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/config"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/intelligence"
	"github.com/alexanderramin/planforge/internal/llm"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/testutil"
	"github.com/alexanderramin/planforge/internal/view"
)

type solidRasterizer struct{ w, h int }

func (r solidRasterizer) Capture(context.Context, string, string, export.RasterOptions) ([]image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return []image.Image{img}, nil
}

type stubClient struct {
	reply string
	err   error
}

func (c stubClient) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &llm.ChatResponse{Text: c.reply}, nil
}

func stubConversations(client llm.Client, factoryErr error) ConversationFactory {
	return func(s domain.AISettings, _ llm.ProgressFunc) *intelligence.Conversation {
		return intelligence.NewConversation(s.Provider, func() (llm.Client, error) {
			if factoryErr != nil {
				return nil, factoryErr
			}
			return client, nil
		})
	}
}

// testAppWithQuota wires a full App backed by an in-memory DB.
func testAppWithQuota(t *testing.T, quota int64) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteKVRepo(database, quota)
	svc := app.NewServices(store, testutil.NewTestUoW(database), quota, nil)
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.QuotaBytes = quota

	return &App{
		Workspace:       app.NewWorkspace(svc, renderer, export.NewExporter(solidRasterizer{w: 40, h: 30})),
		Store:           store,
		Config:          cfg,
		ConfigPath:      filepath.Join(dir, "config.yaml"),
		NewConversation: stubConversations(stubClient{reply: "Start with **Value Propositions**."}, nil),
		Now:             func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
	}
}

func testApp(t *testing.T) *App {
	return testAppWithQuota(t, 0)
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return plain(buf.String()), err
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func writePNG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, testutil.PNG(4, 4, color.Black), 0o644))
	return path
}

// --- Canvas ---

func TestCanvas_SetAndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "canvas", "set", "valuePropositions", "Fresh bread before 7am")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated valuePropositions")

	out, err = executeCmd(t, app, "canvas", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh bread before 7am")
	assert.Contains(t, out, "1 of 9 blocks filled")
}

func TestCanvas_SetUnknownBlock(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "canvas", "set", "mission", "x")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCanvas_EditNeedsTerminal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "canvas", "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- Deck ---

func TestDeck_SetOnlyChangesGivenFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "deck", "set", "2", "--content", "- Too slow\n- Too costly")
	require.NoError(t, err)

	slides, err := app.services().Deck.Slides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Problem", slides[1].Title)
	assert.Equal(t, "- Too slow\n- Too costly", slides[1].Content)

	out, err := executeCmd(t, app, "deck", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "• Too slow")
}

func TestDeck_SetErrors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "deck", "set", "2")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = executeCmd(t, app, "deck", "set", "13", "--title", "Extra")
	assert.True(t, domain.IsValidation(err))

	_, err = executeCmd(t, app, "deck", "set", "two", "--title", "Extra")
	assert.True(t, domain.IsValidation(err))
}

func TestDeck_ResetNeedsConfirmation(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "deck", "set", "1", "--title", "Crumb & Co")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "deck", "reset")
	assert.ErrorContains(t, err, "--yes")

	out, err := executeCmd(t, app, "deck", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deck reset")

	slides, err := app.services().Deck.Slides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDeck(), slides)
}

func TestDeck_LogoFromFileAndAsset(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app, "deck", "logo", writePNG(t, "logo.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "Logo set from logo.png")
	logo, err := app.services().Deck.Logo(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(logo, "data:image/png;base64,"))

	asset, err := app.services().Assets.Add(ctx, "mark.png", domain.AssetLogo, "image/png", testutil.PNG(2, 2, color.White))
	require.NoError(t, err)
	out, err = executeCmd(t, app, "deck", "logo", asset.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "asset "+asset.ID)
	logo, err = app.services().Deck.Logo(ctx)
	require.NoError(t, err)
	assert.Equal(t, asset.DataURL, logo)

	_, err = executeCmd(t, app, "deck", "logo", "--clear")
	require.NoError(t, err)
	logo, err = app.services().Deck.Logo(ctx)
	require.NoError(t, err)
	assert.Empty(t, logo)

	_, err = executeCmd(t, app, "deck", "logo", "asset-missing")
	assert.ErrorContains(t, err, "neither a brand asset id nor an image file")
}

// --- Roadmap, org chart, checklist ---

func TestRoadmap_AddListRemove(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "roadmap", "add", "--title", "Open second shop", "--category", "5-year", "--timeframe", "2029")
	require.NoError(t, err)
	assert.Contains(t, out, "Added milestone Open second shop")

	out, err = executeCmd(t, app, "roadmap", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "5-Year Plan (1)")
	assert.Contains(t, out, "1-Year Plan (0)")

	r, err := app.services().Roadmap.List(context.Background())
	require.NoError(t, err)
	require.Len(t, r, 1)
	_, err = executeCmd(t, app, "roadmap", "remove", r[0].ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "roadmap", "remove", r[0].ID)
	assert.ErrorContains(t, err, "no milestone")
}

func TestRoadmap_AddWithoutTitleFails(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "roadmap", "add")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestOrg_CheckReportsDanglingLine(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "org", "add", "--title", "CEO", "--department", "Leadership")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "org", "add", "--title", "Baker", "--reports-to", "Head Baker")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "org", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Head Baker")

	out, err = executeCmd(t, app, "org", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Leadership")
	assert.Contains(t, out, domain.UnassignedDepartment)
}

func TestOrg_AddRejectsUnknownPhoto(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "org", "add", "--title", "CEO", "--photo", "asset-nope")
	assert.ErrorContains(t, err, "no brand asset")
}

func TestChecklist_Toggle(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "checklist", "add", "Register company", "--category", "Legal")
	require.NoError(t, err)
	c, err := app.services().Checklist.List(context.Background())
	require.NoError(t, err)
	require.Len(t, c, 1)

	out, err := executeCmd(t, app, "checklist", "toggle", c[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "[✔]")

	out, err = executeCmd(t, app, "checklist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1/1 done")
	assert.Contains(t, out, "Legal")

	_, err = executeCmd(t, app, "checklist", "toggle", "task-missing")
	assert.ErrorContains(t, err, "no task")
}

// --- Forecast, SWOT, market ---

func TestForecast_SetShowsProfit(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "forecast", "set", "1", "--revenue", "100000", "--expenses", "40000")
	require.NoError(t, err)
	assert.Contains(t, out, "Year 1 profit: 60,000")

	_, err = executeCmd(t, app, "forecast", "set", "1", "--expenses", "50000")
	require.NoError(t, err)
	f, err := app.services().Forecast.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100000", f.Year1Revenue)
	assert.Equal(t, "50000", f.Year1Expenses)

	_, err = executeCmd(t, app, "forecast", "set", "4", "--revenue", "1")
	assert.True(t, domain.IsValidation(err))

	_, err = executeCmd(t, app, "forecast", "set", "2", "--revenue", "lots")
	assert.True(t, domain.IsValidation(err))
}

func TestSWOT_AddAndRemove(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "swot", "add", "Threats", "New competitor")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "swot", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Threats (1)")
	assert.Contains(t, out, "New competitor")

	s, err := app.services().SWOT.Get(context.Background())
	require.NoError(t, err)
	id := s.Items(domain.Threats)[0].ID

	_, err = executeCmd(t, app, "swot", "remove", "strengths", id)
	assert.ErrorContains(t, err, "no strengths item")
	_, err = executeCmd(t, app, "swot", "remove", "threats", id)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "swot", "add", "risks", "x")
	assert.True(t, domain.IsValidation(err))
}

func TestMarket_FieldsAndLists(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "market", "set", "marketDefinition", "Artisan bakeries in Lisbon")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "market", "add-risk", "Flour prices spike", "--likelihood", "high", "--impact", "low")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "market", "add-competitor", "Padaria Central", "--hq", "Lisbon")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "market", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Artisan bakeries in Lisbon")
	assert.Contains(t, out, "● High")
	assert.Contains(t, out, "Padaria Central")

	_, err = executeCmd(t, app, "market", "add-risk", "Bad", "--likelihood", "extreme")
	assert.True(t, domain.IsValidation(err))

	_, err = executeCmd(t, app, "market", "remove", "risks", "risk-missing")
	assert.ErrorContains(t, err, "no risk")
}

// --- Assets ---

func TestAssets_AddListRemove(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "assets", "add", writePNG(t, "founder.png"), "--type", "image")
	require.NoError(t, err)
	assert.Contains(t, out, "Added image founder.png")

	a, err := app.services().Assets.List(context.Background())
	require.NoError(t, err)
	require.Len(t, a, 1)

	out, err = executeCmd(t, app, "assets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "founder.png")

	_, err = executeCmd(t, app, "assets", "remove", a[0].ID)
	require.NoError(t, err)
}

func TestAssets_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := executeCmd(t, testApp(t), "assets", "add", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image")
}

// --- Storage problems ---

func TestQuotaExceeded_IsWarning(t *testing.T) {
	app := testAppWithQuota(t, 16)

	out, err := executeCmd(t, app, "canvas", "set", "valuePropositions", "A value proposition far longer than the quota")
	require.NoError(t, err)
	assert.Contains(t, out, "storage is full")
	assert.NotContains(t, out, "Updated")
}

func TestCorruptRecord_ShowsDefaultsWithWarning(t *testing.T) {
	app := testApp(t)
	require.NoError(t, app.Store.Set(context.Background(), repository.KeyRoadmap, "{not json"))

	out, err := executeCmd(t, app, "roadmap", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "showing defaults")
	assert.Contains(t, out, "1-Year Plan (0)")
}

// --- Export and backup ---

func TestExport_WritesFile(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()
	_, err := executeCmd(t, app, "canvas", "set", "channels", "Market stall")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "export", "canvas", "--format", "md", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "business-model-canvas.md")

	data, err := os.ReadFile(filepath.Join(dir, "business-model-canvas.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Market stall")

	_, err = executeCmd(t, app, "export", "swot", "--format", "png", "--out", dir)
	require.NoError(t, err)
	png, err := os.ReadFile(filepath.Join(dir, "swot-analysis.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestExport_BadArguments(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "export", "budget")
	assert.ErrorContains(t, err, "unknown artifact")

	_, err = executeCmd(t, app, "export", "canvas", "--format", "docx")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, err = executeCmd(t, app, "export", "deck", "--format", "pptx", "--mode", "vector")
	assert.ErrorContains(t, err, "unknown deck mode")
}

func TestBackup_RoundTrip(t *testing.T) {
	src := testApp(t)
	dir := t.TempDir()
	_, err := executeCmd(t, src, "canvas", "set", "channels", "Market stall")
	require.NoError(t, err)
	_, err = executeCmd(t, src, "roadmap", "add", "--title", "Open shop")
	require.NoError(t, err)

	out, err := executeCmd(t, src, "backup", "export", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "business-plan-backup-2026-03-14.json")

	dst := testApp(t)
	out, err = executeCmd(t, dst, "backup", "import", filepath.Join(dir, "business-plan-backup-2026-03-14.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 2 sections")

	c, err := dst.services().Canvas.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Market stall", c.Channels)
}

func TestBackup_ImportInvalidChangesNothing(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"canvas": 42}`), 0o644))

	_, err := executeCmd(t, app, "backup", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing was changed")

	keys, err := app.Store.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

// --- Settings ---

func TestSettings_ThemeAndAI(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "settings", "theme", "dark")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "settings", "ai", "--provider", "groq")
	require.NoError(t, err)
	assert.Contains(t, out, "needs an API key")

	_, err = executeCmd(t, app, "settings", "ai", "--api-key", "gsk_secret9876")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "groq")
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "9876")
	assert.NotContains(t, out, "gsk_secret")

	_, err = executeCmd(t, app, "settings", "ai", "--provider", "claude")
	assert.True(t, domain.IsValidation(err))
}

func TestSettings_EndpointWritesConfig(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "settings", "ai", "--endpoint", "http://gpu-box:11434")
	require.NoError(t, err)

	cfg, err := config.Load(app.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434", cfg.LLM.Endpoint)
}

// --- Assistant ---

func TestAsk_PrintsReply(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "ask", "where", "do", "I", "start?")
	require.NoError(t, err)
	assert.Contains(t, out, "Value Propositions")
}

func TestAsk_ExplainsMissingKey(t *testing.T) {
	app := testApp(t)
	app.NewConversation = stubConversations(nil, llm.ErrMissingAPIKey)
	_, err := executeCmd(t, app, "settings", "ai", "--provider", "openai")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "ask", "hello")
	require.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Contains(t, out, "API key for openai")
}

func TestChat_NeedsTerminal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "chat")
	assert.ErrorContains(t, err, "interactive terminal")
}
