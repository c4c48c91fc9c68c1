package normalize

import "testing"

func TestKeyInsensitivity(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "oslo s", "oslos"},
		{"uppercase", "OSLOS", "oslos"},
		{"hyphenated", "Oslo-S", "oslos"},
		{"accented", "Skøyen", "skoyen"},
		{"ligature", "Næstved", "naestved"},
		{"combining marks", "Blommenholm stasjon", "blommenholmstasjon"},
		{"diaeresis", "Üllevål", "ulleval"},
		{"acute", "Café", "cafe"},
		{"surrounding space", "  Majorstuen  ", "majorstuen"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Key(tc.in); got != tc.want {
				t.Errorf("Key(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestKeyEquivalentSpellings(t *testing.T) {
	variants := []string{"Oslo-S", "oslo s", "OSLOS", " oslo-S "}
	want := Key(variants[0])
	for _, v := range variants[1:] {
		if got := Key(v); got != want {
			t.Errorf("Key(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestKeyIdempotent(t *testing.T) {
	for _, in := range []string{"Oslo S", "Skøyen", "Üllevål stadion", "nationaltheatret"} {
		once := Key(in)
		if twice := Key(once); twice != once {
			t.Errorf("Key not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestMode(t *testing.T) {
	cases := map[string]string{
		"bus":               "bus",
		"Bus":               "bus",
		"metro":             "metro",
		"tram":              "tram",
		"rail":              "train",
		"regionalTrain":     "train",
		"longDistanceTrain": "train",
		"airportExpress":    "train",
		"coach":             "train",
		"water":             "ferry",
		"waterTransport":    "ferry",
		"helicopter":        "air",
		"air":               "air",
		"funicular":         "funicular",
	}
	for in, want := range cases {
		if got := Mode(in); got != want {
			t.Errorf("Mode(%q) = %q, want %q", in, got, want)
		}
	}
}
