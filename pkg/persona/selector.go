package persona

import "log/slog"

// Next decides who speaks after current.
//
// When override is enabled and the last utterance mentions another roster
// member by one of its aliases, that member takes the next turn. Members are
// scanned in roster order, excluding current, and the first match wins; ties
// across personas are broken by roster order, not by the position of the
// alias in the text.
//
// Otherwise selection is strict round robin: the member after current in
// roster order, wrapping at the end.
//
// current must be a member of the roster; this is guarded when the roster is
// constructed, not here.
func (r *Roster) Next(current Persona, lastText string, override bool) Persona {
	if override && lastText != "" {
		for _, m := range r.members {
			if m.Name == current.Name {
				continue
			}
			if m.Mentioned(lastText) {
				slog.Info("speaker mentioned directly, giving them the next turn",
					"speaker", m.Name)
				return m
			}
		}
	}
	return r.At(r.Index(current.Name) + 1)
}
