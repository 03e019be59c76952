package domain

// ContentBundle is the heterogeneous input object for ingestion. Its scalar
// fields hold prose for the fixed set of portfolio sections; the slices hold
// per-item sources (documents, repositories, videos).
type ContentBundle struct {
	About          string `json:"about"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Projects       string `json:"projects"`
	Certifications string `json:"certifications"`
	Contact        string `json:"contact"`

	Documents    []DocumentSource `json:"documents"`
	Repositories []RepositoryMeta `json:"repositories"`
	Videos       []VideoMeta      `json:"videos"`
}

// DocumentSource is one document with pre-extracted text. Extraction (PDF,
// DOCX, ...) is the caller's responsibility.
type DocumentSource struct {
	Filename string `json:"filename"`
	RawText  string `json:"raw_text"`
}

// RepositoryMeta is the indexed metadata of one code repository.
type RepositoryMeta struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	URL         string   `json:"url"`
}

// VideoMeta is the indexed metadata of one published video.
type VideoMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ScalarFields returns the fixed set of named prose fields in ingestion
// order. The order is part of the ingestion contract: chunks are embedded
// and stored in exactly this field iteration order.
func (b *ContentBundle) ScalarFields() []ContentField {
	return []ContentField{
		{Name: "about", Text: b.About},
		{Name: "skills", Text: b.Skills},
		{Name: "experience", Text: b.Experience},
		{Name: "education", Text: b.Education},
		{Name: "projects", Text: b.Projects},
		{Name: "certifications", Text: b.Certifications},
		{Name: "contact", Text: b.Contact},
	}
}

// ContentField is one named prose field of the bundle.
type ContentField struct {
	Name string
	Text string
}
