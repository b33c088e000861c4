package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brisatech/backoffice/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Store is the in-memory dataset behind the development server. It seeds one
// admin account plus a settings singleton and serves the same record shapes
// the production backend does: records go out with only the `id` key set, the
// legacy `_id` alias is left to clients.
type Store struct {
	mu sync.RWMutex

	admin        models.User
	passwordHash []byte

	messages     map[string]*models.Message
	projects     map[string]*models.Project
	services     map[string]*models.Service
	technologies map[string]*models.Technology
	settings     models.Settings
}

func NewStore(adminEmail, adminPassword string) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Store{
		admin: models.User{
			ID:        newID(),
			Name:      "Admin",
			Email:     adminEmail,
			Role:      models.RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
		messages:     make(map[string]*models.Message),
		projects:     make(map[string]*models.Project),
		services:     make(map[string]*models.Service),
		technologies: make(map[string]*models.Technology),
		settings: models.Settings{
			ID: newID(),
			CompanyInfo: models.CompanyInfo{
				Name:  "Brisatech",
				Email: adminEmail,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// newID returns a Mongo-style 24-char hex identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

func (s *Store) Admin() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.admin
}

func (s *Store) CheckPassword(email, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !strings.EqualFold(email, s.admin.Email) {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

func (s *Store) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwordHash = hash
	return nil
}

func (s *Store) UpdateAdmin(fn func(u *models.User)) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.admin)
	s.admin.UpdatedAt = time.Now().UTC()
	return s.admin
}

func (s *Store) TouchLastLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.admin.LastLogin = &now
}

// paginate slices total items into one page and builds the metadata block.
func paginate(total, page, pageSize int) (lo, hi int, p models.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	lo = (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi = lo + pageSize
	if hi > total {
		hi = total
	}

	totalPages := (total + pageSize - 1) / pageSize
	return lo, hi, models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Messages

func (s *Store) AddMessage(m *models.Message) *models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	m.ID = newID()
	m.Status = models.MessageStatusNew
	m.CreatedAt = now
	m.UpdatedAt = now
	s.messages[m.ID] = m
	c := *m
	return &c
}

func (s *Store) Message(id string) (*models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, false
	}
	c := *m
	return &c, true
}

func (s *Store) Messages(status, search string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if status != "" && m.Status != status {
			continue
		}
		if !matches(search, m.Name, m.Email, m.Company, m.Message) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) UpdateMessage(id string, fn func(m *models.Message)) (*models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, false
	}
	fn(m)
	m.UpdatedAt = time.Now().UTC()
	c := *m
	return &c, true
}

func (s *Store) DeleteMessage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return false
	}
	delete(s.messages, id)
	return true
}

func (s *Store) MessageStats() models.MessageStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.MessageStats
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	for _, m := range s.messages {
		stats.Total++
		switch m.Status {
		case models.MessageStatusNew:
			stats.New++
		case models.MessageStatusRead:
			stats.Read++
		case models.MessageStatusResponded:
			stats.Responded++
		}
		switch {
		case !m.CreatedAt.Before(monthStart):
			stats.ThisMonth++
		case !m.CreatedAt.Before(lastMonthStart):
			stats.LastMonth++
		}
	}
	if stats.LastMonth > 0 {
		stats.GrowthRate = float64(stats.ThisMonth-stats.LastMonth) / float64(stats.LastMonth) * 100
	}
	return stats
}

// Projects

func (s *Store) AddProject(p *models.Project) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = p
	c := *p
	return &c
}

func (s *Store) Project(id string) (*models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, false
	}
	c := *p
	return &c, true
}

func (s *Store) Projects(featured, active *bool, category, search string) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if featured != nil && p.Featured != *featured {
			continue
		}
		if active != nil && p.IsActive != *active {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if !matches(search, p.Title, p.Description, p.ClientName) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) UpdateProject(id string, fn func(p *models.Project)) (*models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, false
	}
	fn(p)
	p.UpdatedAt = time.Now().UTC()
	c := *p
	return &c, true
}

func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	return true
}

// Services

func (s *Store) AddService(svc *models.Service) *models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	svc.ID = newID()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	s.services[svc.ID] = svc
	c := *svc
	return &c
}

func (s *Store) Service(id string) (*models.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, false
	}
	c := *svc
	return &c, true
}

func (s *Store) Services(active *bool, category, search string) []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		if active != nil && svc.IsActive != *active {
			continue
		}
		if category != "" && svc.Category != category {
			continue
		}
		if !matches(search, svc.Title, svc.Description) {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) UpdateService(id string, fn func(svc *models.Service)) (*models.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, false
	}
	fn(svc)
	svc.UpdatedAt = time.Now().UTC()
	c := *svc
	return &c, true
}

func (s *Store) DeleteService(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return false
	}
	delete(s.services, id)
	return true
}

// Technologies

func (s *Store) AddTechnology(t *models.Technology) *models.Technology {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t.ID = newID()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.technologies[t.ID] = t
	c := *t
	return &c
}

func (s *Store) Technology(id string) (*models.Technology, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.technologies[id]
	if !ok {
		return nil, false
	}
	c := *t
	return &c, true
}

func (s *Store) Technologies(category, level string, active *bool, search string) []models.Technology {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Technology, 0, len(s.technologies))
	for _, t := range s.technologies {
		if category != "" && t.Category != category {
			continue
		}
		if level != "" && t.Level != level {
			continue
		}
		if active != nil && t.IsActive != *active {
			continue
		}
		if !matches(search, t.Name, t.Description) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) UpdateTechnology(id string, fn func(t *models.Technology)) (*models.Technology, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.technologies[id]
	if !ok {
		return nil, false
	}
	fn(t)
	t.UpdatedAt = time.Now().UTC()
	c := *t
	return &c, true
}

func (s *Store) DeleteTechnology(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.technologies[id]; !ok {
		return false
	}
	delete(s.technologies, id)
	return true
}

func (s *Store) TechnologyStats() models.TechnologyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.TechnologyStats{
		ByCategory: make(map[string]int),
		ByLevel:    make(map[string]int),
	}
	for _, t := range s.technologies {
		stats.TotalTechnologies++
		stats.ByCategory[t.Category]++
		stats.ByLevel[t.Level]++
	}
	return stats
}

// Settings

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

func (s *Store) UpdateSettings(fn func(st *models.Settings)) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.settings)
	s.settings.UpdatedAt = time.Now().UTC()
	return s.settings
}
