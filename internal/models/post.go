// ABOUTME: Post represents a blog post from the catalog API
// ABOUTME: A post's affinity keys are its tags, verbatim
package models

// Post represents a blog post
type Post struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	UserID int      `json:"userId"`
	Tags   []string `json:"tags"`
	Views  int      `json:"views"`
}

// AffinityKeys returns the interest keys a like on this post contributes to
func (p Post) AffinityKeys() []string {
	return append([]string(nil), p.Tags...)
}
