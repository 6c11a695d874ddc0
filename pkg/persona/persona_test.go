package persona

import "testing"

func TestNewRosterValidation(t *testing.T) {
	defaults := Defaults()

	tests := []struct {
		name    string
		members []Persona
		wantErr bool
	}{
		{"empty roster", nil, true},
		{"single member", []Persona{defaults[Herzog]}, false},
		{"all defaults", []Persona{defaults[Herzog], defaults[Adorno], defaults[Zizek]}, false},
		{"duplicate member", []Persona{defaults[Herzog], defaults[Herzog]}, true},
		{"empty name", []Persona{{Name: ""}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRoster(tc.members...)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewRoster error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRosterAtWraps(t *testing.T) {
	r := testRoster(t)

	if got := r.At(3); got.Name != Herzog {
		t.Errorf("At(3) = %s; want %s", got.Name, Herzog)
	}
	if got := r.At(4); got.Name != Adorno {
		t.Errorf("At(4) = %s; want %s", got.Name, Adorno)
	}
}

func TestMentioned(t *testing.T) {
	adorno := Defaults()[Adorno]

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"first name", "Theo, look at this", true},
		{"full alias lowercase", "surely adorno disagrees", true},
		{"no mention", "nobody is named here", false},
		{"substring of other word", "a theorem is not a person", true}, // substring policy
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := adorno.Mentioned(tc.text); got != tc.want {
				t.Errorf("Mentioned(%q) = %v; want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestRosterOthers(t *testing.T) {
	r := testRoster(t)

	want := "Theodor W. Adorno and Slavoj Žižek"
	if got := r.Others(Herzog); got != want {
		t.Errorf("Others(%s) = %q; want %q", Herzog, got, want)
	}

	solo, err := NewRoster(Defaults()[Zizek])
	if err != nil {
		t.Fatalf("NewRoster error: %v", err)
	}
	if got := solo.Others(Zizek); got != "" {
		t.Errorf("Others on single-member roster = %q; want empty", got)
	}
}
