package medicines

import "strings"

// NormalizeTimes limpia la lista de horas del caller: recorta cada entrada a
// un token de 8 caracteres (cubre "HH:MM" y "HH:MM:SS"), descarta vacíos y
// deduplica. No valida la cantidad: eso lo decide el caller contra
// FreqMeta.RequiredTimes.
func NormalizeTimes(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, t := range raw {
		t = strings.TrimSpace(t)
		if len(t) > 8 {
			t = t[:8]
		}
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
