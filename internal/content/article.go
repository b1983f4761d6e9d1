package content

// Article is the read-only payload owned by the external content API. The
// renderer never creates or mutates one.
type Article struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	ImageURL  string   `json:"image_url"`
	Tags      []string `json:"tags"`
	Category  string   `json:"category"`
}

// LastModified returns updated_at, falling back to created_at when the
// article was never edited.
func (a Article) LastModified() string {
	if a.UpdatedAt != "" {
		return a.UpdatedAt
	}
	return a.CreatedAt
}
