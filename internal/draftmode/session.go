package draftmode

// Session is the draft state of a single request.
type Session struct {
	Enabled        bool
	CookieDraftKey string
}

// EffectiveDraftKey picks the CMS draft key for a fetch. Outside draft mode it
// is always empty, which means published content only.
func (s Session) EffectiveDraftKey(queryKey string) string {
	if !s.Enabled {
		return ""
	}
	if queryKey != "" {
		return queryKey
	}
	return s.CookieDraftKey
}
