// Package site holds storefront content and configuration entities:
// banners, popups, menu, home categories, site settings, page content and
// cookie consent.
package site

// InfoBanner is the strip shown above the header.
type InfoBanner struct {
	Enabled         bool   `json:"enabled"`
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Link            string `json:"link,omitempty"`
}

// Popup is a marketing modal.
type Popup struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Enabled      bool   `json:"enabled"`
	DelaySeconds int    `json:"delay,omitempty"`
	Page         string `json:"page,omitempty"`
}

// MenuItem is a navigation entry; Category links the entry to a catalog path.
type MenuItem struct {
	Label    string     `json:"label"`
	Category string     `json:"category,omitempty"`
	Link     string     `json:"link,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// MenuConfig is the main navigation.
type MenuConfig struct {
	Items []MenuItem `json:"items"`
}

// HomeCategory is a tile on the home page.
type HomeCategory struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
}

// Config is the global storefront configuration.
type Config struct {
	ShopName       string `json:"shopName"`
	ContactEmail   string `json:"contactEmail"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Currency       string `json:"currency"`
	FreeShippingAt string `json:"freeShippingThreshold,omitempty"`
}

// PageContent is editable CMS content for one page, keyed by page slug.
type PageContent struct {
	Title    string            `json:"title"`
	Sections map[string]string `json:"sections,omitempty"`
}

// CookiePreferences records the visitor's consent choices.
type CookiePreferences struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}
