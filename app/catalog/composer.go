package catalog

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kamara/atlas/models"
)

// minQueryRunes is the shortest name fragment that triggers a remote
// search. Anything shorter is stored but leaves the displayed list
// untouched.
const minQueryRunes = 2

// BrowseState is an immutable snapshot of a browse session
type BrowseState struct {
	Query     string
	Region    string
	Countries []models.Country
}

// Composer holds one user's browse session: the active name query, the
// active region, and the list those two currently select. Query and
// region do not compose symmetrically. A query change runs a remote
// name search and narrows the result by region locally; a region change
// runs a remote region filter and narrows the result by name locally.
// The remote matches names liberally, so the two orders can disagree on
// the same inputs. That disagreement is part of the contract.
type Composer struct {
	svc    Service
	client Client

	mu        sync.Mutex
	seq       uint64
	loaded    bool
	full      []models.Country
	displayed []models.Country
	query     string
	region    string
}

// NewComposer creates an empty browse session
func NewComposer(svc Service, client Client) *Composer {
	return &Composer{
		svc:    svc,
		client: client,
	}
}

// Load fetches the full collection once and shows it unfiltered.
// Subsequent calls are no-ops while the collection is held.
func (cp *Composer) Load(ctx context.Context) (*BrowseState, error) {
	cp.mu.Lock()
	if cp.loaded {
		defer cp.mu.Unlock()
		return cp.snapshotLocked(), nil
	}
	token := cp.nextSeqLocked()
	cp.mu.Unlock()

	countries, err := cp.svc.All(ctx)
	if err != nil {
		return nil, err
	}

	cp.mu.Lock()
	defer cp.mu.Unlock()
	if token != cp.seq {
		return cp.snapshotLocked(), nil
	}
	cp.loaded = true
	cp.full = countries
	cp.displayed = countries
	return cp.snapshotLocked(), nil
}

// SetQuery applies a new name query on top of the current region.
//
// An empty query falls back to the cached full collection, narrowed by
// region locally when one is active; no remote call happens. A query
// under the minimum length is remembered but changes nothing. A real
// query always asks the remote for a name search and then drops results
// outside the active region.
func (cp *Composer) SetQuery(ctx context.Context, query string) (*BrowseState, error) {
	query = strings.TrimSpace(query)

	cp.mu.Lock()
	cp.query = query
	region := cp.region

	if query == "" {
		cp.nextSeqLocked()
		if region != "" {
			cp.displayed = filterByRegion(cp.full, region)
		} else {
			cp.displayed = cp.full
		}
		defer cp.mu.Unlock()
		return cp.snapshotLocked(), nil
	}

	if utf8.RuneCountInString(query) < minQueryRunes {
		defer cp.mu.Unlock()
		return cp.snapshotLocked(), nil
	}

	token := cp.nextSeqLocked()
	cp.mu.Unlock()

	countries, err := cp.client.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	cp.mu.Lock()
	defer cp.mu.Unlock()
	if token != cp.seq {
		// a newer query or region change won; drop this result
		return cp.snapshotLocked(), nil
	}
	if region != "" {
		countries = filterByRegion(countries, region)
	}
	cp.displayed = countries
	return cp.snapshotLocked(), nil
}

// SetRegion applies a new region on top of the current query.
//
// Clearing the region re-runs the name search verbatim when any search
// text is present, otherwise it falls back to the cached full
// collection. Selecting a region asks the remote for that region and
// then drops countries whose common name does not contain the query.
// Any non-empty text narrows here; the minimum-length gate applies
// only to SetQuery.
func (cp *Composer) SetRegion(ctx context.Context, region string) (*BrowseState, error) {
	if !models.IsValidRegion(region) {
		return nil, models.ErrInvalidRegion
	}

	cp.mu.Lock()
	cp.region = region
	query := cp.query

	if region == "" && query == "" {
		cp.nextSeqLocked()
		cp.displayed = cp.full
		defer cp.mu.Unlock()
		return cp.snapshotLocked(), nil
	}

	token := cp.nextSeqLocked()
	cp.mu.Unlock()

	var (
		countries []models.Country
		err       error
	)
	if region == "" {
		countries, err = cp.client.SearchByName(ctx, query)
	} else {
		countries, err = cp.client.FilterByRegion(ctx, region)
	}
	if err != nil {
		return nil, err
	}

	cp.mu.Lock()
	defer cp.mu.Unlock()
	if token != cp.seq {
		return cp.snapshotLocked(), nil
	}
	if region != "" && query != "" {
		countries = filterByName(countries, query)
	}
	cp.displayed = countries
	return cp.snapshotLocked(), nil
}

// Clear resets query and region and shows the cached full collection.
// No remote call is made.
func (cp *Composer) Clear() *BrowseState {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.nextSeqLocked()
	cp.query = ""
	cp.region = ""
	cp.displayed = cp.full
	return cp.snapshotLocked()
}

// State returns the current session snapshot without side effects
func (cp *Composer) State() *BrowseState {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.snapshotLocked()
}

func (cp *Composer) nextSeqLocked() uint64 {
	cp.seq++
	return cp.seq
}

func (cp *Composer) snapshotLocked() *BrowseState {
	countries := make([]models.Country, len(cp.displayed))
	copy(countries, cp.displayed)
	return &BrowseState{
		Query:     cp.query,
		Region:    cp.region,
		Countries: countries,
	}
}

func filterByRegion(countries []models.Country, region string) []models.Country {
	filtered := make([]models.Country, 0, len(countries))
	for i := range countries {
		if strings.EqualFold(countries[i].Region, region) {
			filtered = append(filtered, countries[i])
		}
	}
	return filtered
}

func filterByName(countries []models.Country, query string) []models.Country {
	query = strings.ToLower(query)
	filtered := make([]models.Country, 0, len(countries))
	for i := range countries {
		if strings.Contains(strings.ToLower(countries[i].Name.Common), query) {
			filtered = append(filtered, countries[i])
		}
	}
	return filtered
}

// Manager hands out one Composer per user, creating sessions lazily
type Manager struct {
	svc    Service
	client Client

	mu       sync.Mutex
	sessions map[uuid.UUID]*Composer
}

// NewManager creates an empty session manager
func NewManager(svc Service, client Client) *Manager {
	return &Manager{
		svc:      svc,
		client:   client,
		sessions: make(map[uuid.UUID]*Composer),
	}
}

// Session returns the user's browse session, creating it on first use
func (m *Manager) Session(userID uuid.UUID) *Composer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[userID]; ok {
		return session
	}
	session := NewComposer(m.svc, m.client)
	m.sessions[userID] = session
	return session
}

// Drop discards the user's browse session, if any
func (m *Manager) Drop(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
