package store

import "strconv"

// DarkMode returns the persisted theme flag. ok is false when the flag was
// never saved, so callers can fall back to their own default.
func (s *Store) DarkMode() (dark bool, ok bool) {
	v, found := s.GetString(KeyDarkMode)
	if !found {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		s.log.Warn("bad darkMode value", "value", v)
		return false, false
	}
	return b, true
}

func (s *Store) SetDarkMode(dark bool) bool {
	return s.SetString(KeyDarkMode, strconv.FormatBool(dark))
}
