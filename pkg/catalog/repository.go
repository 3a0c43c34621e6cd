package catalog

// Repository is one record of the catalog. Only Name and URL are required;
// every other field may be absent and has a display fallback.
type Repository struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Language       string `json:"language,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"` // ISO-8601
	URL            string `json:"url"`
	Website        string `json:"website,omitempty"`
	PyPI           string `json:"pypi,omitempty"`
	InstallCommand string `json:"installCommand,omitempty"`
	IsArchived     bool   `json:"isArchived,omitempty"`
	IsFork         bool   `json:"isFork,omitempty"`
}

// Catalog is the ordered list of records from one successful load.
// Order is the order of the source document and is never changed.
type Catalog []Repository

// Names returns the record names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}
