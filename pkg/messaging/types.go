package messaging

type ChangeTopic string

const (
	// Tracking carries session and search events, published under the "global" prefix.
	Tracking          ChangeTopic = "tracking"
	CategoriesChanged ChangeTopic = "category_changed"
)
