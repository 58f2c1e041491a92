package domain

// Category — подборка фильмов ("Trending", "Top Rated", ...).
type Category struct {
	// ID — уникальный идентификатор категории.
	ID ID `json:"id"`

	// Name — имя категории. Обязательное поле.
	Name string `json:"name"`

	// Type — произвольный тип для группировки категорий (например, "list").
	Type string `json:"type,omitempty"`

	SoftDelete
}

// CategoryPatch — частичное обновление категории.
type CategoryPatch struct {
	Name *string
	Type *string
}

// Apply применяет патч к категории.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
}

// Genre — жанр фильма.
type Genre struct {
	// ID — уникальный идентификатор жанра.
	ID ID `json:"id"`

	// Name — имя жанра. Обязательное поле.
	Name string `json:"name"`

	SoftDelete
}

// GenrePatch — частичное обновление жанра.
type GenrePatch struct {
	Name *string
}

// Apply применяет патч к жанру.
func (p GenrePatch) Apply(g *Genre) {
	if p.Name != nil {
		g.Name = *p.Name
	}
}
