package httpapi

import (
	"net/http"
	"strings"

	"toolcatalog/internal/domain"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err, msgCategoriesFailed)
		return
	}
	s.writeCatalogJSON(w, r, "categories", catalog.Categories)
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err, msgToolsFailed)
		return
	}
	s.writeCatalogJSON(w, r, "tools", catalog.ToolsInCategory(r.URL.Query().Get("category")))
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err, msgToolFailed)
		return
	}
	tool, ok := catalog.ToolByID(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, &domain.Error{Code: domain.CodeNotFound, Op: "httpapi.get_tool", Message: msgToolNotFound, Cause: domain.ErrToolNotFound}, msgToolNotFound)
		return
	}
	s.writeCatalogJSON(w, r, "tool", tool)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, msgChatFailed)
		return
	}
	reply, err := s.chat.Reply(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, msgChatFailed)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var req domain.IdentifyRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, msgIdentifyFailed)
		return
	}
	req.Image = strings.TrimSpace(req.Image)
	result, err := s.identify.Identify(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, msgIdentifyFailed)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: msgNotFound})
}
