package portal

import "context"

// Store describes the persistence operations behind the content service.
// Implementations map missing rows to ErrNotFound and unique violations to
// ErrConflict. Updates replace the mutable fields of the stored row.
type Store interface {
	OrgUnitStore
	NewsStore
	TenderStore
	AmendmentStore
	MediaStore
	DocumentStore
	TourismStore
	MayorStore
	SiteConfigStore
}

// OrgUnitStore manages secretariats.
type OrgUnitStore interface {
	CreateOrgUnit(ctx context.Context, unit OrgUnit) (OrgUnit, error)
	ListOrgUnits(ctx context.Context) ([]OrgUnit, error)
	GetOrgUnit(ctx context.Context, id string) (OrgUnit, error)
	UpdateOrgUnit(ctx context.Context, unit OrgUnit) (OrgUnit, error)
	DeleteOrgUnit(ctx context.Context, id string) error
}

// NewsStore manages news items.
type NewsStore interface {
	CreateNews(ctx context.Context, item NewsItem) (NewsItem, error)
	ListNews(ctx context.Context) ([]NewsItem, error)
	GetNews(ctx context.Context, id string) (NewsItem, error)
	UpdateNews(ctx context.Context, item NewsItem) (NewsItem, error)
	DeleteNews(ctx context.Context, id string) error
}

// TenderStore manages procurement notices.
type TenderStore interface {
	CreateTender(ctx context.Context, t Tender) (Tender, error)
	ListTenders(ctx context.Context) ([]Tender, error)
	GetTender(ctx context.Context, id string) (Tender, error)
	UpdateTender(ctx context.Context, t Tender) (Tender, error)
	DeleteTender(ctx context.Context, id string) error
}

// AmendmentStore manages budget amendments.
type AmendmentStore interface {
	CreateAmendment(ctx context.Context, a Amendment) (Amendment, error)
	ListAmendments(ctx context.Context) ([]Amendment, error)
	GetAmendment(ctx context.Context, id string) (Amendment, error)
	UpdateAmendment(ctx context.Context, a Amendment) (Amendment, error)
	DeleteAmendment(ctx context.Context, id string) error
}

// MediaStore manages the media gallery.
type MediaStore interface {
	CreateMedia(ctx context.Context, m MediaItem) (MediaItem, error)
	ListMedia(ctx context.Context) ([]MediaItem, error)
	GetMedia(ctx context.Context, id string) (MediaItem, error)
	UpdateMedia(ctx context.Context, m MediaItem) (MediaItem, error)
	DeleteMedia(ctx context.Context, id string) error
}

// DocumentStore manages transparency documents.
type DocumentStore interface {
	CreateDocument(ctx context.Context, d TransparencyDocument) (TransparencyDocument, error)
	ListDocuments(ctx context.Context) ([]TransparencyDocument, error)
	GetDocument(ctx context.Context, id string) (TransparencyDocument, error)
	UpdateDocument(ctx context.Context, d TransparencyDocument) (TransparencyDocument, error)
	DeleteDocument(ctx context.Context, id string) error
}

// TourismStore manages tourist attractions.
type TourismStore interface {
	CreateAttraction(ctx context.Context, a TouristAttraction) (TouristAttraction, error)
	ListAttractions(ctx context.Context) ([]TouristAttraction, error)
	GetAttraction(ctx context.Context, id string) (TouristAttraction, error)
	UpdateAttraction(ctx context.Context, a TouristAttraction) (TouristAttraction, error)
	DeleteAttraction(ctx context.Context, id string) error
}

// MayorStore manages the mayors gallery.
type MayorStore interface {
	CreateMayor(ctx context.Context, m Mayor) (Mayor, error)
	ListMayors(ctx context.Context) ([]Mayor, error)
	GetMayor(ctx context.Context, id string) (Mayor, error)
	UpdateMayor(ctx context.Context, m Mayor) (Mayor, error)
	DeleteMayor(ctx context.Context, id string) error
}

// SiteConfigStore manages the singleton configuration row.
type SiteConfigStore interface {
	GetSiteConfig(ctx context.Context) (SiteConfig, error)
	PutSiteConfig(ctx context.Context, cfg SiteConfig) (SiteConfig, error)
}
