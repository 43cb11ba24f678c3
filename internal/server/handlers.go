package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicedesk/internal/view"
)

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type layoutRequest struct {
	Layout string `json:"layout" binding:"required"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// ViewResponse is the JSON form of a view.View.
type ViewResponse struct {
	Tab        view.Tab          `json:"tab"`
	Layout     view.Layout       `json:"layout"`
	Query      string            `json:"query"`
	SearchOpen bool              `json:"searchOpen"`
	LastSync   *string           `json:"lastSync"`
	Loading    map[string]bool   `json:"loading"`
	Errors     map[string]string `json:"errors"`
	Counts     map[string]int    `json:"counts"`
	Rows       []view.Row        `json:"rows"`
	EmptyState string            `json:"emptyState,omitempty"`
}

// NewViewResponse converts v for JSON output.
func NewViewResponse(v view.View) ViewResponse {
	resp := ViewResponse{
		Tab:        v.Tab,
		Layout:     v.Layout,
		Query:      v.Query,
		SearchOpen: v.SearchOpen,
		Loading:    make(map[string]bool),
		Errors:     make(map[string]string),
		Counts: map[string]int{
			string(view.TabInbox):     len(v.Drafts),
			string(view.TabProcessed): len(v.Processed),
		},
		Rows:       v.Rows,
		EmptyState: v.EmptyState,
	}
	if v.LastSync != "" {
		lastSync := v.LastSync
		resp.LastSync = &lastSync
	}
	for category, loading := range v.Loading {
		resp.Loading[category.Label()] = loading
	}
	for category, err := range v.Errors {
		if err != nil {
			resp.Errors[category.Label()] = view.ErrorMessage(category, err)
		}
	}
	if resp.Rows == nil {
		resp.Rows = []view.Row{}
	}
	return resp
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getView(c *gin.Context) {
	s.respond(c)
}

func (s *Server) selectTab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tab, err := view.ParseTab(req.Tab)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := s.ctrl.SelectTab(tab); err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c)
}

func (s *Server) selectLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	layout, err := view.ParseLayout(req.Layout)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := s.ctrl.SelectLayout(layout); err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c)
}

func (s *Server) setQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.ctrl.OpenSearch()
	s.ctrl.SetQuery(req.Query)
	s.respond(c)
}

func (s *Server) clearQuery(c *gin.Context) {
	s.ctrl.ClearQuery()
	s.respond(c)
}

func (s *Server) toggleSearch(c *gin.Context) {
	s.ctrl.ToggleSearch()
	s.respond(c)
}

func (s *Server) sync(c *gin.Context) {
	// Category failures are reported in the view, not as an HTTP error.
	if err := s.ctrl.Sync(c.Request.Context()); err != nil {
		s.log.Warn().Err(err).Msg("Sync completed with errors")
	}
	s.respond(c)
}

func (s *Server) respond(c *gin.Context) {
	c.JSON(http.StatusOK, NewViewResponse(s.ctrl.View()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
