package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mangashelf/internal/browser"
	"mangashelf/internal/catalog"
	"mangashelf/pkg/logging"
	"mangashelf/pkg/models"
)

// ParamSort carries the presentation-only sort order. It is never part of
// the serialized filter state.
const ParamSort = "sort"

type Handler struct {
	Store  *catalog.Store
	Loader *catalog.Loader
	Lang   language.Tag
	Logger *zap.Logger

	// OnReload runs after POST /api/reload replaced the collection.
	OnReload func(items int)
}

func NewHandler(store *catalog.Store, loader *catalog.Loader, lang language.Tag, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Loader: loader, Lang: lang, Logger: logging.OrNop(logger)}
}

// NewRouter builds the engine with logging, recovery, templates and all
// routes registered.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})
	r.Use(RequestLogger(h.Logger), Recovery(h.Logger))
	r.SetHTMLTemplate(tmpl)
	h.RegisterRoutes(r)
	return r, nil
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
	r.GET("/manga/:id", h.detail)
	r.GET("/read/:id", h.read)

	r.GET("/health", h.health)
	r.GET("/ready", h.ready)

	api := r.Group("/api")
	api.GET("/items", h.listItems)
	api.GET("/items/:id", h.getItem)
	api.GET("/genres", h.genres)
	api.POST("/reload", h.reload)
}

// session restores the filter state of a request. Malformed parameters fall
// back to their defaults.
func (h *Handler) session(c *gin.Context, opts ...browser.Option) *browser.Session {
	st := browser.FromValues(c.Request.URL.Query())
	sortKey, _ := browser.ParseSortKey(c.Query(ParamSort))
	opts = append(opts, browser.WithLanguage(h.Lang), browser.WithSort(sortKey))
	return browser.NewSession(h.Store.Items(), st, opts...)
}

func (h *Handler) index(c *gin.Context) {
	view := newPageView("/")
	s := h.session(c, browser.WithRenderer(view), browser.WithHistory(view))
	c.HTML(http.StatusOK, "index.html", view.bind(s))
}

func (h *Handler) detail(c *gin.Context) {
	it, ok := h.Store.Get(models.ItemID(c.Param("id")))
	if !ok {
		c.HTML(http.StatusNotFound, "detail.html", gin.H{"Item": nil})
		return
	}
	c.HTML(http.StatusOK, "detail.html", gin.H{"Item": it})
}

func (h *Handler) read(c *gin.Context) {
	it, ok := h.Store.Get(models.ItemID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !isWebURL(it.URL) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reading link"})
		return
	}
	c.Redirect(http.StatusFound, it.URL)
}

type itemsResponse struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	PageSize   int             `json:"page_size"`
	Query      string          `json:"query"`
	Sort       browser.SortKey `json:"sort,omitempty"`
	Items      []models.Item   `json:"items"`
	Pagination browser.Plan    `json:"pagination"`
}

func (h *Handler) listItems(c *gin.Context) {
	s := h.session(c)
	v := s.View()
	items := v.PageItems
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, itemsResponse{
		Total:      v.Total(),
		Page:       v.Page,
		TotalPages: v.TotalPages,
		PageSize:   browser.PageSize,
		Query:      s.Query(),
		Sort:       s.SortKey(),
		Items:      items,
		Pagination: s.Plan(),
	})
}

func (h *Handler) getItem(c *gin.Context) {
	it, ok := h.Store.Get(models.ItemID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": browser.Genres(h.Store.Items())})
}

func (h *Handler) reload(c *gin.Context) {
	if h.Loader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no loader configured"})
		return
	}
	n := h.Store.Reload(c.Request.Context(), h.Loader)
	h.Logger.Info("catalog reloaded", zap.Int("items", n))
	if h.OnReload != nil {
		h.OnReload(n)
	}
	c.JSON(http.StatusOK, gin.H{"items": n})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ready(c *gin.Context) {
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"items":     len(h.Store.Items()),
		"loaded_at": h.Store.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
