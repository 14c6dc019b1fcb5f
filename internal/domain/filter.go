package domain

// CommunityFilter — параметры выборки кандидатов из хранилища.
type CommunityFilter struct {
	City     string
	District *string
	PriceMin int
	PriceMax int

	// IncludeNullPrice допускает записи без цены. При ограниченном
	// бюджете ценовое окно — жёсткий фильтр и запись без цены не
	// проходит; безбюджетный поиск обязан её вернуть.
	IncludeNullPrice bool
}
