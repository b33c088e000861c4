package models

// Record is implemented by entities that carry the dual id/_id keys.
type Record interface {
	// SyncID makes both id aliases present and equal. The legacy `_id` is the
	// canonical source when both keys arrive populated with different values.
	SyncID()
}

func syncID(id, legacy *string) {
	switch {
	case *legacy != "":
		*id = *legacy
	case *id != "":
		*legacy = *id
	}
}

func (u *User) SyncID()       { syncID(&u.ID, &u.LegacyID) }
func (m *Message) SyncID()    { syncID(&m.ID, &m.LegacyID) }
func (p *Project) SyncID()    { syncID(&p.ID, &p.LegacyID) }
func (s *Service) SyncID()    { syncID(&s.ID, &s.LegacyID) }
func (t *Technology) SyncID() { syncID(&t.ID, &t.LegacyID) }
