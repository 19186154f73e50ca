package views

// Site carries the branding applied to every rendered page.
type Site struct {
	Name        string // site_name setting, falling back to the configured name
	Description string // site_description setting
}
