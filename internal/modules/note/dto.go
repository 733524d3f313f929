package note

// NoteInputDTO is the shared request body for create, update and draft save.
// Category and tags are opaque ids; the repository never validates them
// against the registries.
type NoteInputDTO struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// draftTemplate is the zero-valued body returned by GET /notes/draft when the
// owner has no draft. The shape is part of the client contract.
type draftTemplate struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func emptyDraftTemplate() draftTemplate {
	return draftTemplate{Tags: []string{}}
}
