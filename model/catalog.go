package model

type Restaurant struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Cuisine string `json:"cuisine,omitempty"`
	Image   string `json:"image,omitempty"`
	IsOpen  bool   `json:"isOpen"`
	Status  string `json:"status,omitempty"`
}

type MenuItem struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Diet        string  `json:"diet,omitempty"`
	Note        string  `json:"note,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Restaurant  Ref     `json:"restaurant"`
}

// MenuFilter narrows a fetched menu. Empty fields do not filter.
type MenuFilter struct {
	Diet             string
	ExcludeAllergens []string
	Category         string
	InStockOnly      bool
}
