package domain

// Review is one storefront comment, seeded or user-submitted. ID is assigned
// at creation and never changes; the array position a client addresses is
// resolved to the ID before any mutation. ReviewCount and PhotoCount are
// opaque display strings from the reviewer widget, not computed here.
type Review struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Avatar      *string  `json:"avatar"`
	Label       string   `json:"label"`
	ReviewCount string   `json:"reviewCount"`
	PhotoCount  string   `json:"photoCount"`
	Rating      int      `json:"rating"`
	Time        string   `json:"time"`
	Content     string   `json:"content"`
	Images      []string `json:"images"`
	IsUser      bool     `json:"isUser"`
	LikeCount   int      `json:"likeCount"`
	IsLiked     bool     `json:"isLiked"`
}

// SeedReviews returns the two placeholder reviews written to
// data/comments.json on first start. newID supplies the generated identity so
// the seed path shares it with the append path.
func SeedReviews(newID func() string) []Review {
	return []Review{
		{
			ID:          newID(),
			Name:        "Maria L.",
			Label:       "Local Guide",
			ReviewCount: "82",
			PhotoCount:  "140",
			Rating:      5,
			Time:        "2 weeks ago",
			Content:     "The beef noodle soup is the best in town. Generous portions and the staff remembers regulars.",
			Images:      []string{},
			LikeCount:   12,
		},
		{
			ID:          newID(),
			Name:        "Tom K.",
			ReviewCount: "5",
			PhotoCount:  "0",
			Rating:      4,
			Time:        "3 months ago",
			Content:     "Solid dumplings, a bit of a wait on weekends. Worth it.",
			Images:      []string{},
			LikeCount:   3,
		},
	}
}
