package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daniacca/chemreg/internal/chemreg"
)

// TableBuilder provides a fluent API for building table configurations.
// Use it to define elements, valence elements and atomic groups that
// make up a nomenclature table.
type TableBuilder struct {
	name            string
	elements        []chemreg.ElementConfig
	valenceElements []chemreg.ValenceElementConfig
	groups          []*GroupBuilder
}

// NewTable creates a new table builder with the given name.
// The name identifies the table and is required by validation.
func NewTable(name string) *TableBuilder {
	return &TableBuilder{
		name:            name,
		elements:        make([]chemreg.ElementConfig, 0),
		valenceElements: make([]chemreg.ValenceElementConfig, 0),
		groups:          make([]*GroupBuilder, 0),
	}
}

// Element adds an element definition to the table.
// The symbol must be unique within the table; an empty symbol registers
// an anonymous element with a placeholder display symbol.
func (tb *TableBuilder) Element(symbol string, atomicWeight float64) *TableBuilder {
	tb.elements = append(tb.elements, chemreg.ElementConfig{
		Symbol:       symbol,
		AtomicWeight: atomicWeight,
	})
	return tb
}

// ValenceElement adds a valence element definition referencing an element
// of this table by symbol. The display symbol is derived from the element
// symbol and valence unless overridden with ValenceElementNamed.
func (tb *TableBuilder) ValenceElement(element string, valence int) *TableBuilder {
	tb.valenceElements = append(tb.valenceElements, chemreg.ValenceElementConfig{
		Element: element,
		Valence: valence,
	})
	return tb
}

// ValenceElementNamed adds a valence element with an explicit display symbol
// override, e.g. "ferric" for Fe(+3).
func (tb *TableBuilder) ValenceElementNamed(element string, valence int, symbol string) *TableBuilder {
	tb.valenceElements = append(tb.valenceElements, chemreg.ValenceElementConfig{
		Element: element,
		Valence: valence,
		Symbol:  symbol,
	})
	return tb
}

// Group adds an atomic group definition to the table.
// Groups are created in order, so a group may reference groups added
// before it.
func (tb *TableBuilder) Group(gb *GroupBuilder) *TableBuilder {
	tb.groups = append(tb.groups, gb)
	return tb
}

// Build converts the builder to a TableConfig that can be used with
// ApplyTable or other chemreg APIs.
func (tb *TableBuilder) Build() chemreg.TableConfig {
	groups := make([]chemreg.GroupConfig, 0, len(tb.groups))
	for _, gb := range tb.groups {
		groups = append(groups, gb.Build())
	}

	return chemreg.TableConfig{
		Name:            tb.name,
		Elements:        tb.elements,
		ValenceElements: tb.valenceElements,
		Groups:          groups,
	}
}

// GroupBuilder provides a fluent API for building atomic group configurations.
// A group is an ordered composition of components with multiplicities, plus
// optional valence and symbol overrides.
type GroupBuilder struct {
	parts         []chemreg.PartConfig
	valence       *int
	noValence     bool
	baseSymbol    string
	symbol        string
	symbolOnlyKey bool
}

// NewGroup creates a new empty group builder.
func NewGroup() *GroupBuilder {
	return &GroupBuilder{
		parts: make([]chemreg.PartConfig, 0),
	}
}

// Element adds an element component with the given multiplicity.
// A bare element carries no valence, so it makes the group's derived
// valence indeterminate.
func (gb *GroupBuilder) Element(symbol string, count int) *GroupBuilder {
	gb.parts = append(gb.parts, chemreg.PartConfig{
		Kind:   string(chemreg.KindElement),
		Symbol: symbol,
		Count:  count,
	})
	return gb
}

// ValenceElement adds a valence element component with the given multiplicity,
// referenced by its display symbol (e.g. "Fe(+2)").
func (gb *GroupBuilder) ValenceElement(symbol string, count int) *GroupBuilder {
	gb.parts = append(gb.parts, chemreg.PartConfig{
		Kind:   string(chemreg.KindValenceElement),
		Symbol: symbol,
		Count:  count,
	})
	return gb
}

// Group adds a nested atomic group component with the given multiplicity,
// referenced by its display symbol. The referenced group must be created
// earlier in the same table.
func (gb *GroupBuilder) Group(symbol string, count int) *GroupBuilder {
	gb.parts = append(gb.parts, chemreg.PartConfig{
		Kind:   string(chemreg.KindAtomicGroup),
		Symbol: symbol,
		Count:  count,
	})
	return gb
}

// Valence fixes the group's valence instead of deriving it from the
// composition. Mutually exclusive with NoValence.
func (gb *GroupBuilder) Valence(v int) *GroupBuilder {
	gb.valence = &v
	return gb
}

// NoValence marks the group as carrying no valence at all.
// Mutually exclusive with Valence.
func (gb *GroupBuilder) NoValence() *GroupBuilder {
	gb.noValence = true
	return gb
}

// BaseSymbol overrides the derived base symbol (the concatenated
// composition symbols).
func (gb *GroupBuilder) BaseSymbol(symbol string) *GroupBuilder {
	gb.baseSymbol = symbol
	return gb
}

// Symbol overrides the derived display symbol.
func (gb *GroupBuilder) Symbol(symbol string) *GroupBuilder {
	gb.symbol = symbol
	return gb
}

// SymbolOnlyKey registers the group under its display symbol alone,
// so a later group with the same symbol conflicts even when its
// composition differs.
func (gb *GroupBuilder) SymbolOnlyKey() *GroupBuilder {
	gb.symbolOnlyKey = true
	return gb
}

// Build converts the builder to a GroupConfig.
func (gb *GroupBuilder) Build() chemreg.GroupConfig {
	return chemreg.GroupConfig{
		Elements:      gb.parts,
		Valence:       gb.valence,
		NoValence:     gb.noValence,
		BaseSymbol:    gb.baseSymbol,
		Symbol:        gb.symbol,
		SymbolOnlyKey: gb.symbolOnlyKey,
	}
}

// Element is the client-side view of a registered element.
type Element struct {
	Index        int     `json:"index"`
	Symbol       string  `json:"symbol"`
	AtomicWeight float64 `json:"atomic_weight"`
}

// ValenceElement is the client-side view of a registered valence element.
type ValenceElement struct {
	Index   int    `json:"index"`
	Symbol  string `json:"symbol"`
	Element string `json:"element"`
	Valence int    `json:"valence"`
}

// AtomicGroup is the client-side view of a registered atomic group.
// Valence is nil when the group's valence is indeterminate or disabled.
type AtomicGroup struct {
	Index      int                  `json:"index"`
	Symbol     string               `json:"symbol"`
	BaseSymbol string               `json:"base_symbol"`
	Valence    *int                 `json:"valence"`
	Elements   []chemreg.PartConfig `json:"elements"`
}

// Client talks to a chemreg server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL
// (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// do sends a request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ApplyTable sends the table configuration to the server, replacing the
// whole set's contents.
func (c *Client) ApplyTable(ctx context.Context, table *TableBuilder) error {
	return c.do(ctx, http.MethodPost, "/table", table.Build(), nil)
}

// ClearTable empties all three registries on the server.
func (c *Client) ClearTable(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/table", nil, nil)
}

// CreateElement registers a single element and returns its view.
func (c *Client) CreateElement(ctx context.Context, symbol string, atomicWeight float64) (Element, error) {
	var view Element
	cfg := chemreg.ElementConfig{Symbol: symbol, AtomicWeight: atomicWeight}
	err := c.do(ctx, http.MethodPost, "/registry/element", cfg, &view)
	return view, err
}

// CreateValenceElement registers a single valence element and returns its view.
func (c *Client) CreateValenceElement(ctx context.Context, element string, valence int) (ValenceElement, error) {
	var view ValenceElement
	cfg := chemreg.ValenceElementConfig{Element: element, Valence: valence}
	err := c.do(ctx, http.MethodPost, "/registry/valence_element", cfg, &view)
	return view, err
}

// CreateGroup registers a single atomic group and returns its view.
func (c *Client) CreateGroup(ctx context.Context, group *GroupBuilder) (AtomicGroup, error) {
	var view AtomicGroup
	err := c.do(ctx, http.MethodPost, "/registry/atomic_group", group.Build(), &view)
	return view, err
}

// Elements lists all registered elements in index order.
func (c *Client) Elements(ctx context.Context) ([]Element, error) {
	var views []Element
	err := c.do(ctx, http.MethodGet, "/registry/element", nil, &views)
	return views, err
}

// ValenceElements lists all registered valence elements in index order.
func (c *Client) ValenceElements(ctx context.Context) ([]ValenceElement, error) {
	var views []ValenceElement
	err := c.do(ctx, http.MethodGet, "/registry/valence_element", nil, &views)
	return views, err
}

// Groups lists all registered atomic groups in index order.
func (c *Client) Groups(ctx context.Context) ([]AtomicGroup, error) {
	var views []AtomicGroup
	err := c.do(ctx, http.MethodGet, "/registry/atomic_group", nil, &views)
	return views, err
}

// ElementByIndex returns the element at the given registry index.
func (c *Client) ElementByIndex(ctx context.Context, index int) (Element, error) {
	var view Element
	err := c.do(ctx, http.MethodGet, "/registry/element/"+strconv.Itoa(index), nil, &view)
	return view, err
}

// ElementBySymbol returns the element registered under the given symbol.
func (c *Client) ElementBySymbol(ctx context.Context, symbol string) (Element, error) {
	var view Element
	err := c.do(ctx, http.MethodGet, "/registry/element/lookup?symbol="+url.QueryEscape(symbol), nil, &view)
	return view, err
}

// ValenceElementBySymbol returns the valence element registered under the
// given display symbol, e.g. "Fe(+2)".
func (c *Client) ValenceElementBySymbol(ctx context.Context, symbol string) (ValenceElement, error) {
	var view ValenceElement
	err := c.do(ctx, http.MethodGet, "/registry/valence_element/lookup?symbol="+url.QueryEscape(symbol), nil, &view)
	return view, err
}

// GroupBySymbol returns the atomic group registered under the given
// display symbol.
func (c *Client) GroupBySymbol(ctx context.Context, symbol string) (AtomicGroup, error) {
	var view AtomicGroup
	err := c.do(ctx, http.MethodGet, "/registry/atomic_group/lookup?symbol="+url.QueryEscape(symbol), nil, &view)
	return view, err
}

// SaveSnapshot asks the server to capture its current state under the
// given snapshot name.
func (c *Client) SaveSnapshot(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/snapshot?name="+url.QueryEscape(name), nil, nil)
}

// RestoreSnapshot asks the server to restore its last saved snapshot.
func (c *Client) RestoreSnapshot(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/snapshot/restore", nil, nil)
}

// RegisterWebhook registers a webhook notifier on the server. Registry
// events will be POSTed to the given URL.
func (c *Client) RegisterWebhook(ctx context.Context, id, webhookURL string) error {
	body := map[string]any{
		"type":   "webhook",
		"id":     id,
		"config": map[string]any{"url": webhookURL},
	}
	return c.do(ctx, http.MethodPost, "/notifiers", body, nil)
}

// RegisterWebSocket registers a websocket notifier on the server.
// Clients can then connect to /ws/{id} to stream registry events.
func (c *Client) RegisterWebSocket(ctx context.Context, id string) error {
	body := map[string]any{
		"type": "websocket",
		"id":   id,
	}
	return c.do(ctx, http.MethodPost, "/notifiers", body, nil)
}

// UnregisterNotifier removes a notifier from the server.
func (c *Client) UnregisterNotifier(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notifiers/"+url.PathEscape(id), nil, nil)
}

// ApplyTable sends the table configuration to a chemreg server.
// The baseURL is the server's base URL (e.g., "http://localhost:8080").
func ApplyTable(ctx context.Context, baseURL string, table *TableBuilder) error {
	return New(baseURL).ApplyTable(ctx, table)
}
