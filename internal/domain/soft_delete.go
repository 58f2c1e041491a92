package domain

import "time"

// SoftDelete — признак мягкого удаления, встраивается во все записи каталога.
//
// Удалённая запись остаётся в хранилище и может быть восстановлена,
// но не попадает в выборки по умолчанию.
type SoftDelete struct {
	// Deleted — запись помечена как удалённая.
	Deleted bool `json:"deleted,omitempty"`

	// DeletedAt — время пометки. Nil для живых записей.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted возвращает true, если запись помечена как удалённая.
func (s SoftDelete) IsDeleted() bool {
	return s.Deleted
}

// MarkDeleted помечает запись как удалённую.
func (s *SoftDelete) MarkDeleted(now time.Time) {
	s.Deleted = true
	s.DeletedAt = &now
}

// Restore снимает пометку удаления.
func (s *SoftDelete) Restore() {
	s.Deleted = false
	s.DeletedAt = nil
}
