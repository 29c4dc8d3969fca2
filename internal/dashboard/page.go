package dashboard

import "sort"

// Element IDs of the two top-level pages.
const (
	LandingPage   = "landing"
	DashboardPage = "dashboard"
)

// Display is the UI surface the dashboard writes to: element text and an
// "active" flag that shows panels and highlights navigation.
type Display interface {
	SetText(elementID, text string)
	SetActive(elementID string, active bool)
}

// Page is an in-memory Display.
type Page struct {
	text   map[string]string
	active map[string]bool
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{
		text:   make(map[string]string),
		active: make(map[string]bool),
	}
}

// SetText implements Display.
func (p *Page) SetText(elementID, text string) {
	p.text[elementID] = text
}

// SetActive implements Display.
func (p *Page) SetActive(elementID string, active bool) {
	if active {
		p.active[elementID] = true
		return
	}
	delete(p.active, elementID)
}

// Text returns the text shown in elementID.
func (p *Page) Text(elementID string) string {
	return p.text[elementID]
}

// IsActive reports whether elementID is active.
func (p *Page) IsActive(elementID string) bool {
	return p.active[elementID]
}

// ActiveElements lists active element IDs in sorted order.
func (p *Page) ActiveElements() []string {
	ids := make([]string, 0, len(p.active))
	for id := range p.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
