package layouts

// PageTitle handles the conditional logic for the browser tab title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - Formwire"
	}
	return "Formwire"
}
