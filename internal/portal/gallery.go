package portal

import (
	"context"
	"fmt"
	"strings"

	"municipio.org/internal/auth"
)

// --- Media gallery ---

// CreateMedia adds a gallery entry.
func (s *Service) CreateMedia(ctx context.Context, m MediaItem) (MediaItem, error) {
	if err := authorizeUnscoped(ctx, auth.ActionCreate, TypeMedia); err != nil {
		return MediaItem{}, err
	}
	if err := validateMedia(m); err != nil {
		return MediaItem{}, err
	}
	return s.store.CreateMedia(ctx, m)
}

// ListMedia is public.
func (s *Service) ListMedia(ctx context.Context) ([]MediaItem, error) {
	return s.store.ListMedia(ctx)
}

// GetMedia is public.
func (s *Service) GetMedia(ctx context.Context, id string) (MediaItem, error) {
	return s.store.GetMedia(ctx, id)
}

// UpdateMedia replaces a gallery entry.
func (s *Service) UpdateMedia(ctx context.Context, m MediaItem) (MediaItem, error) {
	if err := requireSession(ctx); err != nil {
		return MediaItem{}, err
	}
	if _, err := s.store.GetMedia(ctx, m.ID); err != nil {
		return MediaItem{}, err
	}
	if err := authorizeUnscoped(ctx, auth.ActionUpdate, TypeMedia); err != nil {
		return MediaItem{}, err
	}
	if err := validateMedia(m); err != nil {
		return MediaItem{}, err
	}
	return s.store.UpdateMedia(ctx, m)
}

// DeleteMedia removes a gallery entry. Administrator only.
func (s *Service) DeleteMedia(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if _, err := s.store.GetMedia(ctx, id); err != nil {
		return err
	}
	if err := authorizeUnscoped(ctx, auth.ActionDelete, TypeMedia); err != nil {
		return err
	}
	return s.store.DeleteMedia(ctx, id)
}

func validateMedia(m MediaItem) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if m.Kind != MediaKindImage && m.Kind != MediaKindVideo {
		return fmt.Errorf("%w: kind must be %q or %q", ErrInvalidInput, MediaKindImage, MediaKindVideo)
	}
	if strings.TrimSpace(m.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	return nil
}

// --- Tourist attractions ---

// CreateAttraction adds a tourism entry.
func (s *Service) CreateAttraction(ctx context.Context, a TouristAttraction) (TouristAttraction, error) {
	if err := authorizeUnscoped(ctx, auth.ActionCreate, TypeAttraction); err != nil {
		return TouristAttraction{}, err
	}
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return TouristAttraction{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.store.CreateAttraction(ctx, a)
}

// ListAttractions is public.
func (s *Service) ListAttractions(ctx context.Context) ([]TouristAttraction, error) {
	return s.store.ListAttractions(ctx)
}

// GetAttraction is public.
func (s *Service) GetAttraction(ctx context.Context, id string) (TouristAttraction, error) {
	return s.store.GetAttraction(ctx, id)
}

// UpdateAttraction replaces a tourism entry.
func (s *Service) UpdateAttraction(ctx context.Context, a TouristAttraction) (TouristAttraction, error) {
	if err := requireSession(ctx); err != nil {
		return TouristAttraction{}, err
	}
	if _, err := s.store.GetAttraction(ctx, a.ID); err != nil {
		return TouristAttraction{}, err
	}
	if err := authorizeUnscoped(ctx, auth.ActionUpdate, TypeAttraction); err != nil {
		return TouristAttraction{}, err
	}
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return TouristAttraction{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.store.UpdateAttraction(ctx, a)
}

// DeleteAttraction removes a tourism entry. Administrator only.
func (s *Service) DeleteAttraction(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if _, err := s.store.GetAttraction(ctx, id); err != nil {
		return err
	}
	if err := authorizeUnscoped(ctx, auth.ActionDelete, TypeAttraction); err != nil {
		return err
	}
	return s.store.DeleteAttraction(ctx, id)
}

// --- Mayors gallery ---

// CreateMayor adds an entry to the mayors gallery.
func (s *Service) CreateMayor(ctx context.Context, m Mayor) (Mayor, error) {
	if err := authorizeUnscoped(ctx, auth.ActionCreate, TypeMayor); err != nil {
		return Mayor{}, err
	}
	if err := validateMayor(m); err != nil {
		return Mayor{}, err
	}
	return s.store.CreateMayor(ctx, m)
}

// ListMayors is public.
func (s *Service) ListMayors(ctx context.Context) ([]Mayor, error) {
	return s.store.ListMayors(ctx)
}

// GetMayor is public.
func (s *Service) GetMayor(ctx context.Context, id string) (Mayor, error) {
	return s.store.GetMayor(ctx, id)
}

// UpdateMayor replaces a mayors gallery entry.
func (s *Service) UpdateMayor(ctx context.Context, m Mayor) (Mayor, error) {
	if err := requireSession(ctx); err != nil {
		return Mayor{}, err
	}
	if _, err := s.store.GetMayor(ctx, m.ID); err != nil {
		return Mayor{}, err
	}
	if err := authorizeUnscoped(ctx, auth.ActionUpdate, TypeMayor); err != nil {
		return Mayor{}, err
	}
	if err := validateMayor(m); err != nil {
		return Mayor{}, err
	}
	return s.store.UpdateMayor(ctx, m)
}

// DeleteMayor removes a mayors gallery entry. Administrator only.
func (s *Service) DeleteMayor(ctx context.Context, id string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if _, err := s.store.GetMayor(ctx, id); err != nil {
		return err
	}
	if err := authorizeUnscoped(ctx, auth.ActionDelete, TypeMayor); err != nil {
		return err
	}
	return s.store.DeleteMayor(ctx, id)
}

func validateMayor(m Mayor) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if m.TermStart <= 0 {
		return fmt.Errorf("%w: term_start is required", ErrInvalidInput)
	}
	if m.TermEnd != 0 && m.TermEnd < m.TermStart {
		return fmt.Errorf("%w: term_end precedes term_start", ErrInvalidInput)
	}
	return nil
}
