package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"buzzwordz-backend/internal/config"
	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/service"
	"buzzwordz-backend/pkg/logger"
	"buzzwordz-backend/pkg/navigation"
	"buzzwordz-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// TemplateHandler renders the public site: every page shares the base
// layout, and the layout's navigation marks the entry matching the
// request path as active.
type TemplateHandler struct {
	pageService *service.PageService
	menuService *service.MenuService
	templates   *template.Template
	config      *config.Config
	sanitizer   *bluemonday.Policy
}

func NewTemplateHandler(pageService *service.PageService, menuService *service.MenuService, cfg *config.Config, templates *template.Template) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()

	return &TemplateHandler{
		pageService: pageService,
		menuService: menuService,
		templates:   templates,
		config:      cfg,
		sanitizer:   policy,
	}, nil
}

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	if h.renderPageForPath(c, "/") {
		return
	}

	h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Homepage is not configured")
}

// RenderPage serves any published page by its request path.
func (h *TemplateHandler) RenderPage(c *gin.Context) {
	if h.TryRenderPage(c) {
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	if slug != "" {
		if page, err := h.pageService.GetBySlug(slug); err == nil {
			if strings.TrimSpace(page.Path) != "" {
				c.Redirect(http.StatusMovedPermanently, page.Path)
				return
			}
		}
	}

	h.RenderNotFound(c)
}

// TryRenderPage reports whether the request path resolved to a page.
// A false return means the caller should fall through to its own 404.
func (h *TemplateHandler) TryRenderPage(c *gin.Context) bool {
	path := c.Request.URL.Path
	if path == "" {
		path = "/"
	}
	return h.renderPageForPath(c, path)
}

func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Requested page not found")
}

func (h *TemplateHandler) renderPageForPath(c *gin.Context, path string) bool {
	if h.pageService == nil {
		return false
	}

	page, err := h.pageService.GetByPath(utils.NormalizePath(path))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false
		}
		logger.Error(err, "Failed to load page", map[string]interface{}{"path": path})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load page")
		return true
	}

	h.renderCustomPage(c, page)
	return true
}

func (h *TemplateHandler) renderCustomPage(c *gin.Context, page *models.Page) {
	if page == nil {
		h.RenderNotFound(c)
		return
	}

	data := gin.H{
		"Page": page,
	}

	if strings.TrimSpace(page.Content) != "" {
		data["PageContent"] = template.HTML(h.sanitizer.Sanitize(page.Content))
	}

	templateName := strings.TrimSpace(strings.ToLower(page.Template))
	switch templateName {
	case "spelling", "vocabulary":
		data["QuizKind"] = templateName
		data["DefaultWords"] = h.config.QuizDefaultWords
		data["MaxWords"] = h.config.QuizMaxWords
	}

	h.renderTemplate(c, templateName, page.Title, page.Description, data)
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	if templateName == "" {
		templateName = "page"
	}

	h.renderWithLayout(c, http.StatusOK, "base.html", templateName+".html", data)
}

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	siteName := "Buzzwordz Inc."
	siteDescription := ""
	siteURL := ""
	if h.config != nil {
		siteName = h.config.SiteName
		siteDescription = h.config.SiteDescription
		siteURL = h.config.SiteURL
	}

	data := gin.H{
		"Title":       fmt.Sprintf("%s - %s", title, siteName),
		"Description": description,
		"Site": gin.H{
			"Name":        siteName,
			"Description": siteDescription,
			"URL":         siteURL,
		},
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layout, content string, data gin.H) {
	h.setNavigationState(c, data)

	tmpl, err := h.templates.Clone()
	if err != nil {
		logger.Error(err, "Failed to clone templates", nil)
		c.String(http.StatusInternalServerError, "Template error")
		return
	}

	contentTmpl := tmpl.Lookup(content)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": content})
		c.String(http.StatusInternalServerError, "Template not found")
		return
	}

	buf, err := executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": content})
		c.String(http.StatusInternalServerError, "Failed to render content")
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := tmpl.Lookup(layout)
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layout})
		c.String(http.StatusInternalServerError, "Template not found")
		return
	}

	output, err := executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": layout})
		c.String(http.StatusInternalServerError, "Failed to render layout")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

// setNavigationState attaches the resolved navigation to the render data.
// Resolution marks at most one item active for the current request path,
// so the layout never highlights two buttons at once.
func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	cleanedPath := utils.NormalizePath(c.Request.URL.Path)
	data["ActivePath"] = cleanedPath

	var items []navigation.Item
	if h.menuService != nil {
		resolved, err := h.menuService.Navigation()
		if err != nil {
			logger.Error(err, "Failed to load navigation", nil)
		} else {
			items = resolved
		}
	}

	items = navigation.Resolve(items, cleanedPath)
	data["Navigation"] = items
	data["ActiveNav"] = navigation.ActiveURL(items, cleanedPath)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, message string) {
	data := h.basePageData(title, "", gin.H{
		"Status":  status,
		"Message": message,
	})

	h.renderWithLayout(c, status, "base.html", "error.html", data)
}

func executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
