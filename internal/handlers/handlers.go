package handlers

// selected turns a list into a lookup for checkbox state in templates.
func selected(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
