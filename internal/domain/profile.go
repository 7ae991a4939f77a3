package domain

// Profile is the singleton storefront record. Icon is nil when no icon has
// been uploaded; Images is the ordered carousel sequence.
type Profile struct {
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	RedirectURL string   `json:"redirectUrl"`
	Category    string   `json:"category"`
	OpenStatus  string   `json:"openStatus"`
	Description string   `json:"description"`
	Icon        *string  `json:"icon"`
	Images      []string `json:"images"`
}

// DefaultProfile carries the fixed fallback values: fields a client omits on
// replace take these, and the same record seeds data/restaurant.json on first
// start.
func DefaultProfile() Profile {
	return Profile{
		Name:        "好吃餐厅",
		Rating:      4.6,
		Address:     "123 Main Street, Springfield",
		Phone:       "555-0142",
		RedirectURL: "https://maps.example.com/place/123-main-street",
		Category:    "Chinese restaurant",
		OpenStatus:  "Open · Closes 10 PM",
		Description: "Family-run kitchen serving hand-pulled noodles and dumplings since 1998.",
		Icon:        nil,
		Images:      []string{},
	}
}
