package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"buzzwordz-backend/internal/config"
	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/internal/service"
	"buzzwordz-backend/pkg/utils"
)

type stubPageRepository struct {
	pages []models.Page
}

func (s *stubPageRepository) Create(page *models.Page) error { return nil }
func (s *stubPageRepository) Update(page *models.Page) error { return nil }
func (s *stubPageRepository) Delete(id uint) error           { return nil }

func (s *stubPageRepository) GetByID(id uint) (*models.Page, error) {
	for i := range s.pages {
		if s.pages[i].ID == id {
			page := s.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPageRepository) GetBySlug(slug string) (*models.Page, error) {
	for i := range s.pages {
		if s.pages[i].Slug == slug && s.pages[i].Published {
			page := s.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPageRepository) GetBySlugAny(slug string) (*models.Page, error) {
	return s.GetBySlug(slug)
}

func (s *stubPageRepository) GetByPath(path string) (*models.Page, error) {
	for i := range s.pages {
		if s.pages[i].Path == path && s.pages[i].Published {
			page := s.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPageRepository) GetAll() ([]models.Page, error)      { return s.pages, nil }
func (s *stubPageRepository) GetAllAdmin() ([]models.Page, error) { return s.pages, nil }

func (s *stubPageRepository) GetDueForPublication(now time.Time) ([]models.Page, error) {
	return nil, nil
}

func (s *stubPageRepository) ExistsBySlug(slug string) (bool, error) { return false, nil }
func (s *stubPageRepository) ExistsByPath(path string) (bool, error) { return false, nil }
func (s *stubPageRepository) ExistsByPathExceptID(path string, excludeID uint) (bool, error) {
	return false, nil
}

var _ repository.PageRepository = (*stubPageRepository)(nil)

type stubMenuRepository struct {
	items []models.MenuItem
}

func (s *stubMenuRepository) List() ([]models.MenuItem, error) { return s.items, nil }

func (s *stubMenuRepository) ListByLocation(location string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.items {
		if item.Location == location {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubMenuRepository) Create(item *models.MenuItem) error { return nil }
func (s *stubMenuRepository) Update(item *models.MenuItem) error { return nil }
func (s *stubMenuRepository) Delete(id uint) error               { return nil }

func (s *stubMenuRepository) GetByID(id uint) (*models.MenuItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMenuRepository) GetByURL(url string) (*models.MenuItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMenuRepository) NextOrder(location string) (int, error) { return 1, nil }

var _ repository.MenuRepository = (*stubMenuRepository)(nil)

const testLayout = `<nav>{{range .Navigation}}<a href="{{.URL}}" class="nav-button{{if .Active}} active{{end}}">{{.Label}}</a>{{end}}</nav><main>{{.Content}}</main>`

func newTestTemplateHandler(t *testing.T) *TemplateHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pages := &stubPageRepository{pages: []models.Page{
		{ID: 1, Title: "Home", Slug: "home", Path: "/", Template: "page", Published: true, Content: "<p>Welcome to the hive</p>"},
		{ID: 2, Title: "About", Slug: "about", Path: "/about", Template: "page", Published: true},
		{ID: 3, Title: "Spelling Bee", Slug: "spelling-bee", Path: "/spelling-bee", Template: "spelling", Published: true},
	}}
	menu := &stubMenuRepository{items: []models.MenuItem{
		{ID: 1, Label: "Home", URL: "/", Location: "header", Order: 1},
		{ID: 2, Label: "About", URL: "/about", Location: "header", Order: 2},
		{ID: 3, Label: "Spelling Bee", URL: "/spelling-bee", Location: "header", Order: 3},
	}}

	templates := template.New("").Funcs(utils.GetTemplateFuncs())
	template.Must(templates.New("base.html").Parse(testLayout))
	template.Must(templates.New("page.html").Parse(`<h1>{{.Page.Title}}</h1>{{if .PageContent}}{{.PageContent}}{{end}}`))
	template.Must(templates.New("spelling.html").Parse(`<section data-quiz-kind="{{.QuizKind}}" data-default-words="{{.DefaultWords}}"></section>`))
	template.Must(templates.New("error.html").Parse(`<h1>{{.Status}}</h1><p>{{.Message}}</p>`))

	cfg := &config.Config{
		SiteName:         "Buzzwordz Inc.",
		QuizDefaultWords: 10,
		QuizMaxWords:     25,
	}

	handler, err := NewTemplateHandler(
		service.NewPageService(pages, nil),
		service.NewMenuService(menu, nil),
		cfg,
		templates,
	)
	if err != nil {
		t.Fatalf("NewTemplateHandler returned error: %v", err)
	}
	return handler
}

func performRender(t *testing.T, render func(*gin.Context), path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	render(c)
	return w
}

func TestRenderIndexHighlightsHome(t *testing.T) {
	handler := newTestTemplateHandler(t)

	w := performRender(t, handler.RenderIndex, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, `<a href="/" class="nav-button active">Home</a>`) {
		t.Fatalf("expected Home active in layout, got %q", body)
	}
	if got := strings.Count(body, "nav-button active"); got != 1 {
		t.Fatalf("expected exactly one active nav button, found %d in %q", got, body)
	}
	if !strings.Contains(body, "Welcome to the hive") {
		t.Fatalf("expected page content in layout, got %q", body)
	}
}

func TestRenderPageMovesHighlight(t *testing.T) {
	handler := newTestTemplateHandler(t)

	w := performRender(t, func(c *gin.Context) { handler.TryRenderPage(c) }, "/about")
	body := w.Body.String()

	if !strings.Contains(body, `<a href="/about" class="nav-button active">About</a>`) {
		t.Fatalf("expected About active, got %q", body)
	}
	if strings.Contains(body, `<a href="/" class="nav-button active">Home</a>`) {
		t.Fatal("Home must not stay highlighted on the about page")
	}
	if got := strings.Count(body, "nav-button active"); got != 1 {
		t.Fatalf("expected exactly one active nav button, found %d", got)
	}
}

func TestRenderQuizPageCarriesQuizData(t *testing.T) {
	handler := newTestTemplateHandler(t)

	w := performRender(t, func(c *gin.Context) { handler.TryRenderPage(c) }, "/spelling-bee")
	body := w.Body.String()

	if !strings.Contains(body, `data-quiz-kind="spelling"`) {
		t.Fatalf("expected spelling quiz markup, got %q", body)
	}
	if !strings.Contains(body, `data-default-words="10"`) {
		t.Fatalf("expected configured default word count, got %q", body)
	}
	if !strings.Contains(body, `<a href="/spelling-bee" class="nav-button active">Spelling Bee</a>`) {
		t.Fatalf("expected Spelling Bee active, got %q", body)
	}
}

func TestTryRenderPageUnknownPath(t *testing.T) {
	handler := newTestTemplateHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/no-such-page", nil)

	if handler.TryRenderPage(c) {
		t.Fatal("unknown path should not render a page")
	}
}

func TestRenderNotFoundKeepsNavigationInactive(t *testing.T) {
	handler := newTestTemplateHandler(t)

	w := performRender(t, handler.RenderNotFound, "/no-such-page")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "nav-button active") {
		t.Fatalf("no nav button should light up on an unknown path, got %q", body)
	}
	if !strings.Contains(body, "Requested page not found") {
		t.Fatalf("expected the 404 message, got %q", body)
	}
}

func TestSetNavigationStateActivePath(t *testing.T) {
	handler := newTestTemplateHandler(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"root", "/", "/"},
		{"about", "/about", "/about"},
		{"trailing slash", "/about/", "/about"},
		{"nested under about", "/about/team", "/about"},
		{"unknown", "/missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tt.path, nil)

			data := gin.H{}
			handler.setNavigationState(c, data)

			if got := data["ActiveNav"]; got != tt.want {
				t.Fatalf("ActiveNav = %q, want %q", got, tt.want)
			}
		})
	}
}
