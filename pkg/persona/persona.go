// Package persona defines the commentary personas, the roster of active
// speakers, and the next-speaker selection rules.
package persona

import (
	"fmt"
	"strings"
)

// Persona is one commentary voice. Personas are configured once at startup
// and are immutable for the lifetime of the process.
type Persona struct {
	// Name is the display name, e.g. "Werner Herzog". It also keys the
	// persona in config files and CLI flags.
	Name string

	// Tone is a free-text style descriptor injected into the reaction
	// prompt.
	Tone string

	// Aliases are the first names and variants used for mention detection
	// in the override rule.
	Aliases []string

	// VoiceID identifies the synthesizer voice for this persona.
	VoiceID string
}

// Mentioned reports whether any alias of p occurs as a case-insensitive
// substring of text.
func (p Persona) Mentioned(text string) bool {
	lower := strings.ToLower(text)
	for _, alias := range p.Aliases {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// Default persona names.
const (
	Herzog = "Werner Herzog"
	Adorno = "Theodor W. Adorno"
	Zizek  = "Slavoj Žižek"
)

// Defaults returns the built-in three-persona set keyed by name.
func Defaults() map[string]Persona {
	return map[string]Persona{
		Herzog: {
			Name: Herzog,
			Tone: "Dense, grim, dark, inquisitive, analytical, critical, " +
				"abstract, complex, philosophical, nuanced, reflective, " +
				"interdisciplinary, intricate, erudite",
			Aliases: []string{"Werner", "Herzog"},
			VoiceID: "242pUn06d7kxuB5cZdVw",
		},
		Adorno: {
			Name: Adorno,
			Tone: "Complex, critical, dense, interdisciplinary, reflective, " +
				"abstract, pessimistic, scholarly, multifaceted, provocative",
			Aliases: []string{"Theo", "Theodor", "Adorno"},
			VoiceID: "B84LQqhW5ZdidYkT9Cgb",
		},
		Zizek: {
			Name: Zizek,
			Tone: "Provocative, complex, eclectic, humorous, dense, " +
				"contradictory, critical, engaging, paradoxical, polemical",
			Aliases: []string{"Slavoy", "Slavoj", "Zizek"},
			VoiceID: "tHSWOxKiMYit2kQAqxTV",
		},
	}
}

// Roster is an ordered, cyclic sequence of active personas. A roster is
// fixed for the run: non-empty and duplicate-free.
type Roster struct {
	members []Persona
}

// NewRoster validates and builds a roster from the given personas.
func NewRoster(members ...Persona) (*Roster, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("persona: roster must not be empty")
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("persona: persona with empty name")
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("persona: duplicate persona %q", m.Name)
		}
		seen[m.Name] = true
	}
	return &Roster{members: append([]Persona(nil), members...)}, nil
}

// Len returns the number of active personas.
func (r *Roster) Len() int { return len(r.members) }

// Members returns the personas in roster order.
func (r *Roster) Members() []Persona {
	return append([]Persona(nil), r.members...)
}

// At returns the persona at index i modulo the roster length.
func (r *Roster) At(i int) Persona {
	return r.members[((i%len(r.members))+len(r.members))%len(r.members)]
}

// Index returns the roster index of the persona with the given name, or -1.
func (r *Roster) Index(name string) int {
	for i, m := range r.members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Others returns the names of all roster members except the given one,
// joined with " and " for use in prompts.
func (r *Roster) Others(name string) string {
	var names []string
	for _, m := range r.members {
		if m.Name != name {
			names = append(names, m.Name)
		}
	}
	return strings.Join(names, " and ")
}
