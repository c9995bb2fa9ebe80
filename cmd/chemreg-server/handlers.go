package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daniacca/chemreg/internal/chemreg"
	chemnotifiers "github.com/daniacca/chemreg/internal/chemreg/notifiers"
)

// extractKind extracts the registry kind from a path like "/registry/{kind}/..."
// Returns the kind and the remaining path, or empty string if not found
func extractKind(path string) (chemreg.EntityKind, string) {
	if !strings.HasPrefix(path, "/registry/") {
		return "", ""
	}

	// Remove "/registry/" prefix
	rest := path[10:]

	// Find the next "/"
	idx := strings.Index(rest, "/")
	if idx == -1 {
		// No more path segments, the whole thing is the kind
		return chemreg.EntityKind(rest), ""
	}

	kind := chemreg.EntityKind(rest[:idx])
	remainingPath := rest[idx:]
	return kind, remainingPath
}

// writeRegistryError maps registry error values to HTTP status codes
func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chemreg.ErrUnknownKey), errors.Is(err, chemreg.ErrIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, chemreg.ErrKeyConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// elementView is the JSON representation of a registered element
type elementView struct {
	Index        int     `json:"index"`
	Symbol       string  `json:"symbol"`
	AtomicWeight float64 `json:"atomic_weight"`
}

// valenceElementView is the JSON representation of a registered valence element
type valenceElementView struct {
	Index   int    `json:"index"`
	Symbol  string `json:"symbol"`
	Element string `json:"element"`
	Valence int    `json:"valence"`
}

// groupView is the JSON representation of a registered atomic group.
// Valence is null when the group's valence is indeterminate.
type groupView struct {
	Index      int                  `json:"index"`
	Symbol     string               `json:"symbol"`
	BaseSymbol string               `json:"base_symbol"`
	Valence    *int                 `json:"valence"`
	Elements   []chemreg.PartConfig `json:"elements"`
}

func newElementView(el *chemreg.Element) elementView {
	return elementView{
		Index:        el.Index(),
		Symbol:       el.Symbol(),
		AtomicWeight: el.AtomicWeight(),
	}
}

func newValenceElementView(ve *chemreg.ValenceElement) valenceElementView {
	return valenceElementView{
		Index:   ve.Index(),
		Symbol:  ve.Symbol(),
		Element: ve.Element().Symbol(),
		Valence: ve.Valence(),
	}
}

func newGroupView(g *chemreg.AtomicGroup) groupView {
	view := groupView{
		Index:      g.Index(),
		Symbol:     g.Symbol(),
		BaseSymbol: g.BaseSymbol(),
	}
	if v, ok := g.Valence(); ok {
		view.Valence = &v
	}
	for _, p := range g.Parts() {
		part := chemreg.PartConfig{Symbol: p.Component.Symbol(), Count: p.Count}
		switch p.Component.(type) {
		case *chemreg.Element:
			part.Kind = string(chemreg.KindElement)
		case *chemreg.ValenceElement:
			part.Kind = string(chemreg.KindValenceElement)
		case *chemreg.AtomicGroup:
			part.Kind = string(chemreg.KindAtomicGroup)
		}
		view.Elements = append(view.Elements, part)
	}
	return view
}

// POST /table
// Body: TableConfig JSON
// Validates the config and replaces the whole set's contents with it
func (s *Server) handleLoadTable(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var cfg chemreg.TableConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid table json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := chemreg.ValidateTableConfig(cfg); err != nil {
		http.Error(w, "invalid table config: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := chemreg.ApplyTableConfig(s.set, cfg); err != nil {
		s.logger.Errorf("Failed to apply table config: table=%s error=%v", cfg.Name, err)
		writeRegistryError(w, err)
		return
	}

	s.logger.Infof("Table loaded: table=%s elements=%d valence_elements=%d groups=%d",
		cfg.Name, len(cfg.Elements), len(cfg.ValenceElements), len(cfg.Groups))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("table loaded"))
}

// DELETE /table
// Clears all three registries together
func (s *Server) handleClearTable(w http.ResponseWriter, r *http.Request) {
	s.set.Clear()
	s.logger.Infof("Set cleared")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("set cleared"))
}

// handleTableRoutes routes /table requests by method
func (s *Server) handleTableRoutes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleLoadTable(w, r)
	case http.MethodDelete:
		s.handleClearTable(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRegistryRoutes routes requests to registry-specific handlers
// Handles paths like /registry/{kind}, /registry/{kind}/{index} and
// /registry/{kind}/lookup
func (s *Server) handleRegistryRoutes(w http.ResponseWriter, r *http.Request) {
	kind, remainingPath := extractKind(r.URL.Path)
	switch kind {
	case chemreg.KindElement, chemreg.KindValenceElement, chemreg.KindAtomicGroup:
	default:
		http.Error(w, "unknown registry kind: must be element, valence_element or atomic_group", http.StatusNotFound)
		return
	}

	switch {
	case remainingPath == "" && r.Method == http.MethodGet:
		s.handleListEntities(w, r, kind)
	case remainingPath == "" && r.Method == http.MethodPost:
		s.handleCreateEntity(w, r, kind)
	case remainingPath == "/lookup" && r.Method == http.MethodGet:
		s.handleLookupEntity(w, r, kind)
	case remainingPath != "" && r.Method == http.MethodGet:
		s.handleGetEntity(w, r, kind, strings.TrimPrefix(remainingPath, "/"))
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// GET /registry/{kind}
// Lists all entities of the registry in index order
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request, kind chemreg.EntityKind) {
	switch kind {
	case chemreg.KindElement:
		views := make([]elementView, 0, s.set.Elements.Len())
		for _, el := range s.set.Elements.All() {
			views = append(views, newElementView(el))
		}
		writeJSON(w, views)
	case chemreg.KindValenceElement:
		views := make([]valenceElementView, 0, s.set.ValenceElements.Len())
		for _, ve := range s.set.ValenceElements.All() {
			views = append(views, newValenceElementView(ve))
		}
		writeJSON(w, views)
	case chemreg.KindAtomicGroup:
		views := make([]groupView, 0, s.set.Groups.Len())
		for _, g := range s.set.Groups.All() {
			views = append(views, newGroupView(g))
		}
		writeJSON(w, views)
	}
}

// POST /registry/{kind}
// Body: the kind's config JSON (ElementConfig, ValenceElementConfig or GroupConfig)
// Creates a single entity and returns its view
func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request, kind chemreg.EntityKind) {
	defer r.Body.Close()

	switch kind {
	case chemreg.KindElement:
		var cfg chemreg.ElementConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		el, err := s.set.Elements.Create(chemreg.ElementData{
			Symbol:       cfg.Symbol,
			AtomicWeight: cfg.AtomicWeight,
		})
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		s.logger.Debugf("Element created: index=%d symbol=%s", el.Index(), el.Symbol())
		writeJSON(w, newElementView(el))

	case chemreg.KindValenceElement:
		var cfg chemreg.ValenceElementConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		el, err := s.set.Elements.BySymbol(cfg.Element)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		ve, err := s.set.ValenceElements.Create(chemreg.ValenceElementData{
			Element: el,
			Valence: cfg.Valence,
			Symbol:  cfg.Symbol,
		})
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		s.logger.Debugf("Valence element created: index=%d symbol=%s", ve.Index(), ve.Symbol())
		writeJSON(w, newValenceElementView(ve))

	case chemreg.KindAtomicGroup:
		var cfg chemreg.GroupConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := chemreg.GroupDataFromConfig(s.set, cfg)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		g, err := s.set.Groups.Create(data)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		s.logger.Debugf("Atomic group created: index=%d symbol=%s", g.Index(), g.Symbol())
		writeJSON(w, newGroupView(g))
	}
}

// GET /registry/{kind}/{index}
// Returns the entity at the given registry index
func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request, kind chemreg.EntityKind, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		http.Error(w, "invalid index: must be an integer", http.StatusBadRequest)
		return
	}

	switch kind {
	case chemreg.KindElement:
		el, err := s.set.Elements.ByIndex(index)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newElementView(el))
	case chemreg.KindValenceElement:
		ve, err := s.set.ValenceElements.ByIndex(index)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newValenceElementView(ve))
	case chemreg.KindAtomicGroup:
		g, err := s.set.Groups.ByIndex(index)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newGroupView(g))
	}
}

// GET /registry/{kind}/lookup?symbol=...
// Returns the entity registered under the given display symbol
func (s *Server) handleLookupEntity(w http.ResponseWriter, r *http.Request, kind chemreg.EntityKind) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "symbol query parameter is required", http.StatusBadRequest)
		return
	}

	switch kind {
	case chemreg.KindElement:
		el, err := s.set.Elements.BySymbol(symbol)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newElementView(el))
	case chemreg.KindValenceElement:
		ve, err := s.set.ValenceElements.BySymbol(symbol)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newValenceElementView(ve))
	case chemreg.KindAtomicGroup:
		g, err := s.set.Groups.BySymbol(symbol)
		if err != nil {
			writeRegistryError(w, err)
			return
		}
		writeJSON(w, newGroupView(g))
	}
}

// handleSnapshotRoutes routes /snapshot requests
func (s *Server) handleSnapshotRoutes(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/snapshot" && r.Method == http.MethodPost:
		s.handleSaveSnapshot(w, r)
	case r.URL.Path == "/snapshot" && r.Method == http.MethodGet:
		s.handleGetSnapshot(w, r)
	case r.URL.Path == "/snapshot/restore" && r.Method == http.MethodPost:
		s.handleRestoreSnapshot(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// POST /snapshot
// Query param: name (default: "default")
// Captures the set's current state and writes it to the snapshot file
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshotFile == "" {
		http.Error(w, "snapshot file not configured", http.StatusInternalServerError)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "default"
	}

	snapshot := chemreg.TakeSnapshot(s.set, name)
	data, err := chemreg.EncodeSnapshotJSON(snapshot)
	if err != nil {
		http.Error(w, "failed to encode snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.snapshotFile), 0o755); err != nil {
		s.logger.Errorf("Failed to create snapshot directory: error=%v", err)
		http.Error(w, "failed to save snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(s.snapshotFile, data, 0o644); err != nil {
		s.logger.Errorf("Failed to save snapshot: error=%v", err)
		http.Error(w, "failed to save snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debugf("Snapshot saved: name=%s path=%s", name, s.snapshotFile)

	writeJSON(w, map[string]string{
		"status": "ok",
		"path":   s.snapshotFile,
	})
}

// GET /snapshot
// Returns the raw snapshot JSON if it exists
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshotFile == "" {
		http.Error(w, "snapshot file not configured", http.StatusInternalServerError)
		return
	}

	data, err := os.ReadFile(s.snapshotFile)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Return raw JSON
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// POST /snapshot/restore
// Body: snapshot JSON (optional; when empty, restores from the snapshot file)
// Validates the snapshot and replaces the set's contents with it
func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		if s.snapshotFile == "" {
			http.Error(w, "snapshot file not configured", http.StatusInternalServerError)
			return
		}
		fileData, err := os.ReadFile(s.snapshotFile)
		if err != nil {
			if os.IsNotExist(err) {
				http.Error(w, "snapshot not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to read snapshot: "+err.Error(), http.StatusInternalServerError)
			return
		}
		data = fileData
	}

	snapshot, err := chemreg.DecodeSnapshotJSON(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := chemreg.RestoreSnapshot(s.set, snapshot); err != nil {
		s.logger.Errorf("Failed to restore snapshot: error=%v", err)
		writeRegistryError(w, err)
		return
	}

	s.logger.Infof("Snapshot restored: table=%s", snapshot.Table.Name)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("snapshot restored"))
}

// handleNotifiersRoutes handles notifier management endpoints
func (s *Server) handleNotifiersRoutes(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/notifiers" && r.Method == http.MethodGet:
		s.handleListNotifiers(w, r)
	case r.URL.Path == "/notifiers" && r.Method == http.MethodPost:
		s.handleRegisterNotifier(w, r)
	case strings.HasPrefix(r.URL.Path, "/notifiers/") && r.Method == http.MethodDelete:
		s.handleUnregisterNotifier(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// GET /notifiers
// List all registered notifiers
func (s *Server) handleListNotifiers(w http.ResponseWriter, _ *http.Request) {
	notifierIDs := s.notifierMgr.ListNotifiers()

	// Get notifier types
	notifiers := make([]map[string]string, 0, len(notifierIDs))
	for _, id := range notifierIDs {
		notifier, exists := s.notifierMgr.GetNotifier(id)
		if exists {
			notifiers = append(notifiers, map[string]string{
				"id":   id,
				"type": notifier.Type(),
			})
		}
	}

	writeJSON(w, map[string]any{"notifiers": notifiers})
}

// POST /notifiers
// Register a new notifier
// Body: { "type": "webhook", "id": "my-webhook", "config": { "url": "http://..." } }
type registerNotifierRequest struct {
	Type   string         `json:"type"`
	ID     string         `json:"id"`
	Config map[string]any `json:"config"`
}

func (s *Server) handleRegisterNotifier(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req registerNotifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}

	var notifier chemreg.Notifier

	switch req.Type {
	case "webhook":
		url, ok := req.Config["url"].(string)
		if !ok || url == "" {
			http.Error(w, "webhook URL is required", http.StatusBadRequest)
			return
		}
		wh := chemnotifiers.NewWebhookNotifier(req.ID, url)

		// Set custom headers if provided
		if headers, ok := req.Config["headers"].(map[string]any); ok {
			for k, v := range headers {
				if vStr, ok := v.(string); ok {
					wh.SetHeader(k, vStr)
				}
			}
		}

		notifier = wh
	case "websocket":
		notifier = chemnotifiers.NewWebSocketNotifier(req.ID)
	default:
		http.Error(w, "unknown notifier type: "+req.Type, http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.RegisterNotifier(notifier); err != nil {
		// Avoid leaking the websocket broadcaster goroutine
		notifier.Close()
		http.Error(w, "cannot register notifier: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier registered"))
}

// DELETE /notifiers/{id}
// Unregister a notifier
func (s *Server) handleUnregisterNotifier(w http.ResponseWriter, r *http.Request) {
	notifierID := strings.TrimPrefix(r.URL.Path, "/notifiers/")
	if notifierID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.UnregisterNotifier(notifierID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier unregistered"))
}

// GET /ws/{notifierID}
// Upgrades the connection to a websocket and attaches it to the named
// websocket notifier, which must already be registered
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	notifierID := strings.TrimPrefix(r.URL.Path, "/ws/")
	if notifierID == "" {
		http.Error(w, "notifier ID is required in path: /ws/{notifierID}", http.StatusBadRequest)
		return
	}

	notifier, exists := s.notifierMgr.GetNotifier(notifierID)
	if !exists {
		http.Error(w, "notifier not found", http.StatusNotFound)
		return
	}

	wsNotifier, ok := notifier.(*chemnotifiers.WebSocketNotifier)
	if !ok {
		http.Error(w, "notifier is not a websocket notifier", http.StatusBadRequest)
		return
	}

	upgrader := wsNotifier.GetUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("WebSocket upgrade failed: notifier=%s error=%v", notifierID, err)
		return
	}

	wsNotifier.RegisterClient(conn)
	s.logger.Debugf("WebSocket client connected: notifier=%s remote=%s", notifierID, conn.RemoteAddr())
}
