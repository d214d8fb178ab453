package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"municipio.org/internal/auth"
)

// --- News ---

// CreateNews publishes a news item. A manager's item defaults to their own
// secretariat when none is given.
func (s *Service) CreateNews(ctx context.Context, item NewsItem) (NewsItem, error) {
	unit, err := s.authorizeScopedCreate(ctx, TypeNews, item.OrgUnitID, false)
	if err != nil {
		return NewsItem{}, err
	}
	item.OrgUnitID = unit
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return NewsItem{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.Body) == "" {
		return NewsItem{}, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now().UTC()
	}
	return s.store.CreateNews(ctx, item)
}

// ListNews is public.
func (s *Service) ListNews(ctx context.Context) ([]NewsItem, error) {
	return s.store.ListNews(ctx)
}

// GetNews is public.
func (s *Service) GetNews(ctx context.Context, id string) (NewsItem, error) {
	return s.store.GetNews(ctx, id)
}

// UpdateNews replaces a news item. Managers may only touch items owned by
// their secretariat.
func (s *Service) UpdateNews(ctx context.Context, item NewsItem) (NewsItem, error) {
	if err := requireSession(ctx); err != nil {
		return NewsItem{}, err
	}
	existing, err := s.store.GetNews(ctx, item.ID)
	if err != nil {
		return NewsItem{}, err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionUpdate, TypeNews, existing.OrgUnitID); err != nil {
		return NewsItem{}, err
	}
	unit, err := s.resolveScopedUpdateUnit(ctx, item.OrgUnitID, existing.OrgUnitID, false)
	if err != nil {
		return NewsItem{}, err
	}
	item.OrgUnitID = unit
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return NewsItem{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.Body) == "" {
		return NewsItem{}, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if item.PublishedAt.IsZero() {
		item.PublishedAt = existing.PublishedAt
	}
	return s.store.UpdateNews(ctx, item)
}

// DeleteNews removes a news item.
func (s *Service) DeleteNews(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	existing, err := s.store.GetNews(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionDelete, TypeNews, existing.OrgUnitID); err != nil {
		return err
	}
	return s.store.DeleteNews(ctx, id)
}

// --- Tenders ---

// CreateTender registers a procurement notice. Tenders always belong to a
// secretariat.
func (s *Service) CreateTender(ctx context.Context, t Tender) (Tender, error) {
	unit, err := s.authorizeScopedCreate(ctx, TypeTender, t.OrgUnitID, true)
	if err != nil {
		return Tender{}, err
	}
	t.OrgUnitID = unit
	if err := validateTender(t); err != nil {
		return Tender{}, err
	}
	return s.store.CreateTender(ctx, t)
}

// ListTenders is public.
func (s *Service) ListTenders(ctx context.Context) ([]Tender, error) {
	return s.store.ListTenders(ctx)
}

// GetTender is public.
func (s *Service) GetTender(ctx context.Context, id string) (Tender, error) {
	return s.store.GetTender(ctx, id)
}

// UpdateTender replaces a procurement notice.
func (s *Service) UpdateTender(ctx context.Context, t Tender) (Tender, error) {
	if err := requireSession(ctx); err != nil {
		return Tender{}, err
	}
	existing, err := s.store.GetTender(ctx, t.ID)
	if err != nil {
		return Tender{}, err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionUpdate, TypeTender, existing.OrgUnitID); err != nil {
		return Tender{}, err
	}
	unit, err := s.resolveScopedUpdateUnit(ctx, t.OrgUnitID, existing.OrgUnitID, true)
	if err != nil {
		return Tender{}, err
	}
	t.OrgUnitID = unit
	if err := validateTender(t); err != nil {
		return Tender{}, err
	}
	return s.store.UpdateTender(ctx, t)
}

// DeleteTender removes a procurement notice.
func (s *Service) DeleteTender(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	existing, err := s.store.GetTender(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionDelete, TypeTender, existing.OrgUnitID); err != nil {
		return err
	}
	return s.store.DeleteTender(ctx, id)
}

func validateTender(t Tender) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(t.Number) == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInput)
	}
	if !t.OpensAt.IsZero() && !t.ClosesAt.IsZero() && t.ClosesAt.Before(t.OpensAt) {
		return fmt.Errorf("%w: closes_at precedes opens_at", ErrInvalidInput)
	}
	return nil
}

// --- Budget amendments ---

// CreateAmendment registers a budget amendment. Amendments always belong to a
// secretariat.
func (s *Service) CreateAmendment(ctx context.Context, a Amendment) (Amendment, error) {
	unit, err := s.authorizeScopedCreate(ctx, TypeAmendment, a.OrgUnitID, true)
	if err != nil {
		return Amendment{}, err
	}
	a.OrgUnitID = unit
	if err := validateAmendment(a); err != nil {
		return Amendment{}, err
	}
	return s.store.CreateAmendment(ctx, a)
}

// ListAmendments is public.
func (s *Service) ListAmendments(ctx context.Context) ([]Amendment, error) {
	return s.store.ListAmendments(ctx)
}

// GetAmendment is public.
func (s *Service) GetAmendment(ctx context.Context, id string) (Amendment, error) {
	return s.store.GetAmendment(ctx, id)
}

// UpdateAmendment replaces a budget amendment.
func (s *Service) UpdateAmendment(ctx context.Context, a Amendment) (Amendment, error) {
	if err := requireSession(ctx); err != nil {
		return Amendment{}, err
	}
	existing, err := s.store.GetAmendment(ctx, a.ID)
	if err != nil {
		return Amendment{}, err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionUpdate, TypeAmendment, existing.OrgUnitID); err != nil {
		return Amendment{}, err
	}
	unit, err := s.resolveScopedUpdateUnit(ctx, a.OrgUnitID, existing.OrgUnitID, true)
	if err != nil {
		return Amendment{}, err
	}
	a.OrgUnitID = unit
	if err := validateAmendment(a); err != nil {
		return Amendment{}, err
	}
	return s.store.UpdateAmendment(ctx, a)
}

// DeleteAmendment removes a budget amendment.
func (s *Service) DeleteAmendment(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	existing, err := s.store.GetAmendment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionDelete, TypeAmendment, existing.OrgUnitID); err != nil {
		return err
	}
	return s.store.DeleteAmendment(ctx, id)
}

func validateAmendment(a Amendment) error {
	if strings.TrimSpace(a.Number) == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInput)
	}
	if a.Year <= 0 {
		return fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if strings.TrimSpace(a.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if a.AmountCents < 0 {
		return fmt.Errorf("%w: amount_cents must be >= 0", ErrInvalidInput)
	}
	return nil
}

// --- Transparency documents ---

// CreateDocument publishes a transparency document.
func (s *Service) CreateDocument(ctx context.Context, d TransparencyDocument) (TransparencyDocument, error) {
	unit, err := s.authorizeScopedCreate(ctx, TypeDocument, d.OrgUnitID, false)
	if err != nil {
		return TransparencyDocument{}, err
	}
	d.OrgUnitID = unit
	if err := validateDocument(d); err != nil {
		return TransparencyDocument{}, err
	}
	return s.store.CreateDocument(ctx, d)
}

// ListDocuments is public.
func (s *Service) ListDocuments(ctx context.Context) ([]TransparencyDocument, error) {
	return s.store.ListDocuments(ctx)
}

// GetDocument is public.
func (s *Service) GetDocument(ctx context.Context, id string) (TransparencyDocument, error) {
	return s.store.GetDocument(ctx, id)
}

// UpdateDocument replaces a transparency document.
func (s *Service) UpdateDocument(ctx context.Context, d TransparencyDocument) (TransparencyDocument, error) {
	if err := requireSession(ctx); err != nil {
		return TransparencyDocument{}, err
	}
	existing, err := s.store.GetDocument(ctx, d.ID)
	if err != nil {
		return TransparencyDocument{}, err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionUpdate, TypeDocument, existing.OrgUnitID); err != nil {
		return TransparencyDocument{}, err
	}
	unit, err := s.resolveScopedUpdateUnit(ctx, d.OrgUnitID, existing.OrgUnitID, false)
	if err != nil {
		return TransparencyDocument{}, err
	}
	d.OrgUnitID = unit
	if err := validateDocument(d); err != nil {
		return TransparencyDocument{}, err
	}
	return s.store.UpdateDocument(ctx, d)
}

// DeleteDocument removes a transparency document.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	existing, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeScopedWrite(ctx, auth.ActionDelete, TypeDocument, existing.OrgUnitID); err != nil {
		return err
	}
	return s.store.DeleteDocument(ctx, id)
}

func validateDocument(d TransparencyDocument) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if d.Year <= 0 {
		return fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.DocumentURL) == "" {
		return fmt.Errorf("%w: document_url is required", ErrInvalidInput)
	}
	return nil
}
