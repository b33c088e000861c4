package models

import "time"

// Domain models mirroring the back-office REST API record shapes. The backend
// serves every record with an `id` key, while older consumers (and some stored
// documents) still carry the Mongo-style `_id`; both keys live on the structs
// and are reconciled via SyncID.

// User roles accepted by the backend.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID        string     `json:"id,omitempty"`
	LegacyID  string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Avatar    string     `json:"avatar,omitempty"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Message statuses. Transitions are new -> read -> responded in intent, but
// the API accepts any status on update.
const (
	MessageStatusNew       = "new"
	MessageStatusRead      = "read"
	MessageStatusResponded = "responded"
)

// Message is a contact-form submission.
type Message struct {
	ID          string     `json:"id,omitempty"`
	LegacyID    string     `json:"_id,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	RespondedBy string     `json:"respondedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Project categories.
const (
	ProjectCategoryWeb     = "web"
	ProjectCategoryMobile  = "mobile"
	ProjectCategoryDesktop = "desktop"
	ProjectCategoryOther   = "other"
)

// Project is a portfolio entry shown on the public site when active.
type Project struct {
	ID           string    `json:"id,omitempty"`
	LegacyID     string    `json:"_id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	Featured     bool      `json:"featured"`
	Category     string    `json:"category,omitempty"`
	ClientName   string    `json:"clientName,omitempty"`
	CompletedAt  string    `json:"completedAt,omitempty"`
	IsActive     bool      `json:"isActive"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ServicePricing describes how an offered service is billed.
type ServicePricing struct {
	Model         string  `json:"model"`
	StartingPrice float64 `json:"startingPrice,omitempty"`
	Currency      string  `json:"currency"`
}

// Service is an offered service listed on the site.
type Service struct {
	ID          string          `json:"id,omitempty"`
	LegacyID    string          `json:"_id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Features    []string        `json:"features"`
	Pricing     *ServicePricing `json:"pricing,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `json:"isActive"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Technology categories.
const (
	TechCategoryFrontend = "frontend"
	TechCategoryBackend  = "backend"
	TechCategoryDatabase = "database"
	TechCategoryDevops   = "devops"
	TechCategoryDesign   = "design"
	TechCategoryMobile   = "mobile"
)

// Technology proficiency levels.
const (
	TechLevelBasic        = "basic"
	TechLevelIntermediate = "intermediate"
	TechLevelAdvanced     = "advanced"
)

// Technology is a stack entry.
type Technology struct {
	ID                string    `json:"id,omitempty"`
	LegacyID          string    `json:"_id,omitempty"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Icon              string    `json:"icon"`
	Level             string    `json:"level"`
	Description       string    `json:"description,omitempty"`
	YearsOfExperience int       `json:"yearsOfExperience,omitempty"`
	IsActive          bool      `json:"isActive"`
	Order             int       `json:"order"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CompanyInfo is the company block of the settings singleton.
type CompanyInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// SocialLinks holds optional per-network profile URLs.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Github    string `json:"github,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Settings is the singleton site configuration aggregate. It is updated in
// place and never created or deleted by clients.
type Settings struct {
	ID          string      `json:"_id,omitempty"`
	CompanyInfo CompanyInfo `json:"companyInfo"`
	SocialLinks SocialLinks `json:"socialLinks"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Pagination is the metadata block returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// MessageStats is returned by GET /api/messages/stats.
type MessageStats struct {
	Total      int     `json:"total"`
	New        int     `json:"new"`
	Read       int     `json:"read"`
	Responded  int     `json:"responded"`
	ThisMonth  int     `json:"thisMonth"`
	LastMonth  int     `json:"lastMonth"`
	GrowthRate float64 `json:"growthRate,omitempty"`
}

// TechnologyStats is returned by GET /api/stack/stats.
type TechnologyStats struct {
	TotalTechnologies int            `json:"totalTechnologies"`
	ByCategory        map[string]int `json:"byCategory"`
	ByLevel           map[string]int `json:"byLevel"`
}
