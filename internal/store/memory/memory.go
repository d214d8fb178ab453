// Package memory provides a mutex-guarded in-memory implementation of the
// portal and account stores, used by tests and by local runs without a
// configured database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"municipio.org/internal/auth"
	"municipio.org/internal/ids"
	"municipio.org/internal/portal"
)

// Store keeps every entity in process memory.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]auth.Account
	orgUnits    map[string]portal.OrgUnit
	news        map[string]portal.NewsItem
	tenders     map[string]portal.Tender
	amendments  map[string]portal.Amendment
	media       map[string]portal.MediaItem
	documents   map[string]portal.TransparencyDocument
	attractions map[string]portal.TouristAttraction
	mayors      map[string]portal.Mayor
	siteConfig  *portal.SiteConfig
}

var (
	_ auth.AccountStore = (*Store)(nil)
	_ portal.Store      = (*Store)(nil)
)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:    make(map[string]auth.Account),
		orgUnits:    make(map[string]portal.OrgUnit),
		news:        make(map[string]portal.NewsItem),
		tenders:     make(map[string]portal.Tender),
		amendments:  make(map[string]portal.Amendment),
		media:       make(map[string]portal.MediaItem),
		documents:   make(map[string]portal.TransparencyDocument),
		attractions: make(map[string]portal.TouristAttraction),
		mayors:      make(map[string]portal.Mayor),
	}
}

// --- Accounts ---

func (s *Store) CreateAccount(ctx context.Context, acct auth.Account) (auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == acct.Email {
			return auth.Account{}, auth.ErrConflict
		}
	}
	now := time.Now().UTC()
	acct.ID = ids.New()
	acct.CreatedAt = now
	acct.UpdatedAt = now
	s.accounts[acct.ID] = acct
	return acct, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return auth.Account{}, auth.ErrNotFound
	}
	return acct, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.Email == email {
			return acct, nil
		}
	}
	return auth.Account{}, auth.ErrNotFound
}

func (s *Store) ListAccounts(ctx context.Context) ([]auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]auth.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) UpdateAccount(ctx context.Context, id string, upd auth.AccountUpdate) (auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return auth.Account{}, auth.ErrNotFound
	}
	if upd.Email != nil {
		for otherID, other := range s.accounts {
			if otherID != id && other.Email == *upd.Email {
				return auth.Account{}, auth.ErrConflict
			}
		}
		acct.Email = *upd.Email
	}
	if upd.Name != nil {
		acct.Name = *upd.Name
	}
	if upd.Role != nil {
		acct.Role = *upd.Role
	}
	if upd.OrgUnitID != nil {
		acct.OrgUnitID = *upd.OrgUnitID
	}
	if upd.PasswordHash != nil {
		acct.PasswordHash = *upd.PasswordHash
	}
	acct.UpdatedAt = time.Now().UTC()
	s.accounts[id] = acct
	return acct, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return auth.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

// --- Secretariats ---

func (s *Store) CreateOrgUnit(ctx context.Context, unit portal.OrgUnit) (portal.OrgUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orgUnits {
		if strings.EqualFold(existing.Name, unit.Name) {
			return portal.OrgUnit{}, portal.ErrConflict
		}
	}
	now := time.Now().UTC()
	unit.ID = ids.New()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	s.orgUnits[unit.ID] = unit
	return unit, nil
}

func (s *Store) ListOrgUnits(ctx context.Context) ([]portal.OrgUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.OrgUnit, 0, len(s.orgUnits))
	for _, unit := range s.orgUnits {
		out = append(out, unit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetOrgUnit(ctx context.Context, id string) (portal.OrgUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unit, ok := s.orgUnits[id]
	if !ok {
		return portal.OrgUnit{}, portal.ErrNotFound
	}
	return unit, nil
}

func (s *Store) UpdateOrgUnit(ctx context.Context, unit portal.OrgUnit) (portal.OrgUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.orgUnits[unit.ID]
	if !ok {
		return portal.OrgUnit{}, portal.ErrNotFound
	}
	unit.CreatedAt = existing.CreatedAt
	unit.UpdatedAt = time.Now().UTC()
	s.orgUnits[unit.ID] = unit
	return unit, nil
}

func (s *Store) DeleteOrgUnit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgUnits[id]; !ok {
		return portal.ErrNotFound
	}
	// Tenders and amendments restrict the delete; everything else drops its
	// reference, matching the schema's on delete set null.
	for _, t := range s.tenders {
		if t.OrgUnitID == id {
			return portal.ErrConflict
		}
	}
	for _, a := range s.amendments {
		if a.OrgUnitID == id {
			return portal.ErrConflict
		}
	}
	for key, item := range s.news {
		if item.OrgUnitID == id {
			item.OrgUnitID = ""
			s.news[key] = item
		}
	}
	for key, d := range s.documents {
		if d.OrgUnitID == id {
			d.OrgUnitID = ""
			s.documents[key] = d
		}
	}
	for key, acct := range s.accounts {
		if acct.OrgUnitID == id {
			acct.OrgUnitID = ""
			s.accounts[key] = acct
		}
	}
	delete(s.orgUnits, id)
	return nil
}

// OrgUnitName implements auth.OrgUnitNamer.
func (s *Store) OrgUnitName(ctx context.Context, id string) (string, error) {
	unit, err := s.GetOrgUnit(ctx, id)
	if err != nil {
		return "", err
	}
	return unit.Name, nil
}

// --- News ---

func (s *Store) CreateNews(ctx context.Context, item portal.NewsItem) (portal.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	item.ID = ids.New()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.news[item.ID] = item
	return item, nil
}

func (s *Store) ListNews(ctx context.Context) ([]portal.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.NewsItem, 0, len(s.news))
	for _, item := range s.news {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (s *Store) GetNews(ctx context.Context, id string) (portal.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.news[id]
	if !ok {
		return portal.NewsItem{}, portal.ErrNotFound
	}
	return item, nil
}

func (s *Store) UpdateNews(ctx context.Context, item portal.NewsItem) (portal.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.news[item.ID]
	if !ok {
		return portal.NewsItem{}, portal.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	s.news[item.ID] = item
	return item, nil
}

func (s *Store) DeleteNews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.news[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.news, id)
	return nil
}

// --- Tenders ---

func (s *Store) CreateTender(ctx context.Context, t portal.Tender) (portal.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	t.ID = ids.New()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tenders[t.ID] = t
	return t, nil
}

func (s *Store) ListTenders(ctx context.Context) ([]portal.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.Tender, 0, len(s.tenders))
	for _, t := range s.tenders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetTender(ctx context.Context, id string) (portal.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenders[id]
	if !ok {
		return portal.Tender{}, portal.ErrNotFound
	}
	return t, nil
}

func (s *Store) UpdateTender(ctx context.Context, t portal.Tender) (portal.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tenders[t.ID]
	if !ok {
		return portal.Tender{}, portal.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	s.tenders[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTender(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenders[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.tenders, id)
	return nil
}

// --- Amendments ---

func (s *Store) CreateAmendment(ctx context.Context, a portal.Amendment) (portal.Amendment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	a.ID = ids.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.amendments[a.ID] = a
	return a, nil
}

func (s *Store) ListAmendments(ctx context.Context) ([]portal.Amendment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.Amendment, 0, len(s.amendments))
	for _, a := range s.amendments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetAmendment(ctx context.Context, id string) (portal.Amendment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.amendments[id]
	if !ok {
		return portal.Amendment{}, portal.ErrNotFound
	}
	return a, nil
}

func (s *Store) UpdateAmendment(ctx context.Context, a portal.Amendment) (portal.Amendment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.amendments[a.ID]
	if !ok {
		return portal.Amendment{}, portal.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.amendments[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAmendment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amendments[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.amendments, id)
	return nil
}

// --- Media ---

func (s *Store) CreateMedia(ctx context.Context, m portal.MediaItem) (portal.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = ids.New()
	m.CreatedAt = time.Now().UTC()
	s.media[m.ID] = m
	return m, nil
}

func (s *Store) ListMedia(ctx context.Context) ([]portal.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.MediaItem, 0, len(s.media))
	for _, m := range s.media {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetMedia(ctx context.Context, id string) (portal.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.media[id]
	if !ok {
		return portal.MediaItem{}, portal.ErrNotFound
	}
	return m, nil
}

func (s *Store) UpdateMedia(ctx context.Context, m portal.MediaItem) (portal.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.media[m.ID]
	if !ok {
		return portal.MediaItem{}, portal.ErrNotFound
	}
	m.CreatedAt = existing.CreatedAt
	s.media[m.ID] = m
	return m, nil
}

func (s *Store) DeleteMedia(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.media[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.media, id)
	return nil
}

// --- Transparency documents ---

func (s *Store) CreateDocument(ctx context.Context, d portal.TransparencyDocument) (portal.TransparencyDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	d.ID = ids.New()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.documents[d.ID] = d
	return d, nil
}

func (s *Store) ListDocuments(ctx context.Context) ([]portal.TransparencyDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.TransparencyDocument, 0, len(s.documents))
	for _, d := range s.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (portal.TransparencyDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return portal.TransparencyDocument{}, portal.ErrNotFound
	}
	return d, nil
}

func (s *Store) UpdateDocument(ctx context.Context, d portal.TransparencyDocument) (portal.TransparencyDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.documents[d.ID]
	if !ok {
		return portal.TransparencyDocument{}, portal.ErrNotFound
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	s.documents[d.ID] = d
	return d, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// --- Tourist attractions ---

func (s *Store) CreateAttraction(ctx context.Context, a portal.TouristAttraction) (portal.TouristAttraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	a.ID = ids.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.attractions[a.ID] = a
	return a, nil
}

func (s *Store) ListAttractions(ctx context.Context) ([]portal.TouristAttraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.TouristAttraction, 0, len(s.attractions))
	for _, a := range s.attractions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetAttraction(ctx context.Context, id string) (portal.TouristAttraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attractions[id]
	if !ok {
		return portal.TouristAttraction{}, portal.ErrNotFound
	}
	return a, nil
}

func (s *Store) UpdateAttraction(ctx context.Context, a portal.TouristAttraction) (portal.TouristAttraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.attractions[a.ID]
	if !ok {
		return portal.TouristAttraction{}, portal.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.attractions[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAttraction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attractions[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.attractions, id)
	return nil
}

// --- Mayors ---

func (s *Store) CreateMayor(ctx context.Context, m portal.Mayor) (portal.Mayor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	m.ID = ids.New()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.mayors[m.ID] = m
	return m, nil
}

func (s *Store) ListMayors(ctx context.Context) ([]portal.Mayor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portal.Mayor, 0, len(s.mayors))
	for _, m := range s.mayors {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TermStart > out[j].TermStart })
	return out, nil
}

func (s *Store) GetMayor(ctx context.Context, id string) (portal.Mayor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mayors[id]
	if !ok {
		return portal.Mayor{}, portal.ErrNotFound
	}
	return m, nil
}

func (s *Store) UpdateMayor(ctx context.Context, m portal.Mayor) (portal.Mayor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.mayors[m.ID]
	if !ok {
		return portal.Mayor{}, portal.ErrNotFound
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	s.mayors[m.ID] = m
	return m, nil
}

func (s *Store) DeleteMayor(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mayors[id]; !ok {
		return portal.ErrNotFound
	}
	delete(s.mayors, id)
	return nil
}

// --- Site configuration ---

func (s *Store) GetSiteConfig(ctx context.Context) (portal.SiteConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.siteConfig == nil {
		return portal.SiteConfig{}, nil
	}
	return *s.siteConfig, nil
}

func (s *Store) PutSiteConfig(ctx context.Context, cfg portal.SiteConfig) (portal.SiteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.UpdatedAt = time.Now().UTC()
	s.siteConfig = &cfg
	return cfg, nil
}
