package article

type CreateRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
	Body    string `json:"body" binding:"required"`
	Publish bool   `json:"publish"`
}

type UpdateRequest struct {
	Title   string  `json:"title"`
	Summary *string `json:"summary"`
	Body    string  `json:"body"`
	Publish *bool   `json:"publish"`
}
