// Package entitlement tracks which catalog items the current session has
// paid for. The store is process-local and session-scoped: entitlements do
// not survive a restart, matching the storefront's anonymous-purchase model.
package entitlement

import (
	"sync"

	"logomarket/internal/domain"
)

type Entitlement struct {
	PurchaseID string
	Links      []domain.DownloadLink
}

// Store maps catalog item id to its unlock state. Writes come only from the
// checkout flow's success path; reads may happen from any handler at any
// time.
type Store struct {
	mu      sync.RWMutex
	granted map[string]Entitlement
}

func NewStore() *Store {
	return &Store{granted: make(map[string]Entitlement)}
}

// Grant unlocks an item. Granting twice overwrites with the latest links
// rather than erroring, which keeps re-purchase flows harmless.
func (s *Store) Grant(itemID, purchaseID string, links []domain.DownloadLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted[itemID] = Entitlement{
		PurchaseID: purchaseID,
		Links:      append([]domain.DownloadLink(nil), links...),
	}
}

func (s *Store) IsUnlocked(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.granted[itemID]
	return ok
}

// LinksFor returns the download links granted for an item, or nil when the
// item is locked. The returned slice is a copy.
func (s *Store) LinksFor(itemID string) []domain.DownloadLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.granted[itemID]
	if !ok {
		return nil
	}
	return append([]domain.DownloadLink(nil), ent.Links...)
}

// PurchaseIDFor returns the purchase record id behind an unlocked item.
func (s *Store) PurchaseIDFor(itemID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.granted[itemID]
	return ent.PurchaseID, ok
}

// ResolveLinks derives the download pairs for a purchased item. A single
// direct asset URL wins and is labeled with the first available format;
// otherwise one pair is emitted per available format that actually has a URL
// in the formats map. Formats listed as available but missing a URL are
// skipped so a pair never carries an empty URL.
func ResolveLinks(item domain.CatalogItem) []domain.DownloadLink {
	if item.SingleFormatURL != "" {
		format := "png"
		if len(item.AvailableFormats) > 0 {
			format = item.AvailableFormats[0]
		}
		return []domain.DownloadLink{{Format: format, URL: item.SingleFormatURL}}
	}

	var links []domain.DownloadLink
	for _, format := range item.AvailableFormats {
		url, ok := item.Formats[format]
		if !ok || url == "" {
			continue
		}
		links = append(links, domain.DownloadLink{Format: format, URL: url})
	}
	return links
}
