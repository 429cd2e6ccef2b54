package schedule

import "strings"

// NormalizeAttendees maps the attendee shapes a model may emit onto a
// deduplicated, order-preserving list of email addresses. Accepted shapes:
//
//   - "a@x.com" or "a@x.com, b@y.com" (comma or semicolon separated)
//   - {"email": "a@x.com", "name": "A"}
//   - ["a@x.com", {"email": "b@y.com"}, ...]
//
// Entries without an "@" are dropped rather than rejected; the model is not
// trusted to produce clean input.
func NormalizeAttendees(raw any) []string {
	var emails []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && strings.Contains(s, "@") {
			emails = append(emails, s)
		}
	}

	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(strings.ReplaceAll(v, ";", ","), ",") {
			add(part)
		}
	case map[string]any:
		if email, ok := v["email"].(string); ok {
			add(email)
		}
	case []any:
		for _, item := range v {
			switch entry := item.(type) {
			case string:
				add(entry)
			case map[string]any:
				if email, ok := entry["email"].(string); ok {
					add(email)
				}
			}
		}
	case []string:
		for _, item := range v {
			add(item)
		}
	}

	seen := make(map[string]bool, len(emails))
	var result []string
	for _, email := range emails {
		if !seen[email] {
			seen[email] = true
			result = append(result, email)
		}
	}
	return result
}
