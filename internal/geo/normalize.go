package geo

import "strings"

// aliases maps known spellings to the name used for matching.
var aliases = map[string]string{
	"Andaman & Nicobar":     "Andaman and Nicobar Islands",
	"A & N Islands":         "Andaman and Nicobar Islands",
	"Arunanchal Pradesh":    "Arunachal Pradesh",
	"Chhattisgarh":          "Chattisgarh",
	"Dadara & Nagar Haveli": "Dadra and Nagar Haveli",
	"Daman & Diu":           "Daman and Diu",
	"NCT of Delhi":          "Delhi",
	"Jammu & Kashmir":       "Jammu and Kashmir",
	"Pondicherry":           "Puducherry",
	"Uttaranchal":           "Uttarakhand",
	"Orissa":                "Odisha",
}

// Normalize trims name and maps a known alias to its canonical spelling.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}
