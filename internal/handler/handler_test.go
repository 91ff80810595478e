package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/albertyip/dsedrill/internal/exam"
	appI18n "github.com/albertyip/dsedrill/internal/i18n"
	"github.com/albertyip/dsedrill/internal/llm"
	"github.com/albertyip/dsedrill/internal/model"
	"github.com/albertyip/dsedrill/internal/qgen"
	"github.com/albertyip/dsedrill/internal/session"
)

func TestMain(m *testing.M) {
	if err := appI18n.Init(appI18n.DefaultLang); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testApp bundles a handler under test with its cookie jar.
type testApp struct {
	t      *testing.T
	router chi.Router
	mock   *llm.MockProvider
	cookie *http.Cookie
}

func newTestApp(t *testing.T, responses ...llm.MockResponse) *testApp {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	gen := qgen.New(mock, qgen.DefaultConfig())
	controller := exam.New(gen, 0)
	h := New(session.NewStore(0), controller, Config{SecureCookies: false})

	r := chi.NewRouter()
	r.Use(appI18n.Middleware(appI18n.DefaultLang))
	h.Routes(r)

	return &testApp{t: t, router: r, mock: mock}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			a.cookie = c
		}
	}
	return rec
}

func okResponse(q, h, s string) llm.MockResponse {
	body, _ := json.Marshal(map[string]string{"question": q, "hint": h, "solution": s})
	return llm.MockResponse{Content: body}
}

func generateForm() url.Values {
	return url.Values{
		"section": {string(model.SectionA1)},
		"topic":   {model.Topics[0]},
	}
}

func TestIndexShowsWelcome(t *testing.T) {
	app := newTestApp(t)

	rec := app.do("GET", "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	if app.cookie == nil {
		t.Fatal("first visit should set a session cookie")
	}
	if !strings.Contains(rec.Body.String(), "歡迎使用 HKDSE 數學智能練習網") {
		t.Error("welcome screen missing before first generation")
	}
}

func TestGenerateFlow(t *testing.T) {
	app := newTestApp(t, okResponse("求 $x^2 = 9$ 的正根。", "開方。", "$x = 3$。"))

	rec := app.do("POST", "/generate", generateForm())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /generate = %d, want 303", rec.Code)
	}

	rec = app.do("GET", "/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "求 $x^2 = 9$ 的正根。") {
		t.Error("generated question not rendered")
	}
	if strings.Contains(body, "開方。") {
		t.Error("hint must stay hidden before reveal")
	}
	if strings.Contains(body, "$x = 3$。") {
		t.Error("solution must stay hidden before reveal")
	}
	if !strings.Contains(body, "甲部(一) Section A1") {
		t.Error("current practice header should name the section")
	}
}

func TestRevealFlow(t *testing.T) {
	app := newTestApp(t, okResponse("q", "提示文字", "詳解文字"))

	app.do("POST", "/generate", generateForm())

	rec := app.do("POST", "/hint", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /hint = %d, want 303", rec.Code)
	}
	body := app.do("GET", "/", nil).Body.String()
	if !strings.Contains(body, "提示文字") {
		t.Error("hint not shown after reveal")
	}
	if strings.Contains(body, "詳解文字") {
		t.Error("solution should stay hidden until its own reveal")
	}

	app.do("POST", "/solution", nil)
	body = app.do("GET", "/", nil).Body.String()
	if !strings.Contains(body, "提示文字") || !strings.Contains(body, "詳解文字") {
		t.Error("both hint and solution should be visible")
	}
}

func TestRevealWithoutResultIsSafe(t *testing.T) {
	app := newTestApp(t)

	rec := app.do("POST", "/hint", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /hint = %d, want 303", rec.Code)
	}
	body := app.do("GET", "/", nil).Body.String()
	if !strings.Contains(body, "歡迎使用") {
		t.Error("session should still be on the welcome screen")
	}
}

func TestGenerateFailureKeepsPreviousQuestion(t *testing.T) {
	app := newTestApp(t,
		okResponse("舊題目", "h", "s"),
		llm.MockResponse{Content: json.RawMessage(`oops, not JSON`)},
	)

	app.do("POST", "/generate", generateForm())

	rec := app.do("POST", "/generate", generateForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("failed generate should render the page, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "AI 回應格式異常") {
		t.Error("malformed-response banner missing")
	}
	if !strings.Contains(body, "舊題目") {
		t.Error("previous question must remain visible after a failure")
	}
}

func TestGenerateTransportFailureShowsMessage(t *testing.T) {
	app := newTestApp(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	rec := app.do("POST", "/generate", generateForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("failed generate should render the page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "生成題目時發生錯誤") {
		t.Error("transport failure banner missing")
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"section": {"nope"}, "topic": {model.Topics[0]}}
	if rec := app.do("POST", "/generate", form); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid section = %d, want 400", rec.Code)
	}

	form = url.Values{"section": {string(model.SectionA1)}, "topic": {"量子力學"}}
	if rec := app.do("POST", "/generate", form); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid topic = %d, want 400", rec.Code)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t, okResponse("甲的題目", "h", "s"))

	app.do("POST", "/generate", generateForm())
	if !strings.Contains(app.do("GET", "/", nil).Body.String(), "甲的題目") {
		t.Fatal("first session lost its question")
	}

	// A second browser (no cookie) starts empty.
	other := &testApp{t: t, router: app.router}
	if !strings.Contains(other.do("GET", "/", nil).Body.String(), "歡迎使用") {
		t.Error("fresh session must not see another session's question")
	}
}
