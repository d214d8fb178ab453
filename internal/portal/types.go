// Package portal holds the content domain of the municipal portal and the
// access-controlled operations over it.
package portal

import "time"

// OrgUnit is a municipal secretariat, the administrative scoping boundary.
type OrgUnit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewsItem is a published news article, optionally owned by a secretariat.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CoverURL    string    `json:"cover_url,omitempty"`
	OrgUnitID   string    `json:"org_unit_id,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tender is a public procurement notice. It always belongs to a secretariat.
type Tender struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Number      string    `json:"number"`
	Status      string    `json:"status,omitempty"`
	DocumentURL string    `json:"document_url,omitempty"`
	OrgUnitID   string    `json:"org_unit_id"`
	OpensAt     time.Time `json:"opens_at,omitempty"`
	ClosesAt    time.Time `json:"closes_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Amendment is a budget amendment record. It always belongs to a secretariat.
type Amendment struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Year        int       `json:"year"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	DocumentURL string    `json:"document_url,omitempty"`
	OrgUnitID   string    `json:"org_unit_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Media kinds accepted by the gallery.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// MediaItem is a gallery entry pointing at an uploaded file.
type MediaItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// TransparencyDocument is a published legal or fiscal document.
type TransparencyDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Year        int       `json:"year"`
	DocumentURL string    `json:"document_url"`
	OrgUnitID   string    `json:"org_unit_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TouristAttraction is a point of interest on the tourism pages.
type TouristAttraction struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Mayor is an entry in the mayors gallery.
type Mayor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	TermStart int       `json:"term_start"`
	TermEnd   int       `json:"term_end,omitempty"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteConfig is the singleton site-wide configuration row.
type SiteConfig struct {
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	FacebookURL  string    `json:"facebook_url,omitempty"`
	InstagramURL string    `json:"instagram_url,omitempty"`
	GazetteURL   string    `json:"gazette_url,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
