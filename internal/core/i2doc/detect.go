package i2doc

// Probe pairs a well-known term key with the literal text it carries in the
// language being searched for.
type Probe struct {
	Term  string `yaml:"term"`
	Value string `yaml:"value"`
}

// DefaultProbes are common UI terms that are usually left untranslated in
// English exports.
var DefaultProbes = []Probe{
	{Term: "Cancel", Value: "Cancel"},
	{Term: "RUN", Value: "RUN"},
	{Term: "3DMark/RUN", Value: "RUN"},
}

// DetectDefaultLanguage guesses the English column. Probes are tried in
// order; for the first probe with a hit it returns the first language slot,
// of the first term carrying that key, whose text equals the probe value
// exactly. This is a heuristic: ok is false when no probe matches.
func (d *Document) DetectDefaultLanguage(probes []Probe) (lang int, ok bool) {
	for _, p := range probes {
		for _, pos := range d.Lookup(p.Term) {
			for j, text := range d.Texts(pos) {
				if text == p.Value {
					return j, true
				}
			}
		}
	}
	return 0, false
}

// DefaultLanguage returns the detected language, falling back to the first.
func (d *Document) DefaultLanguage(probes []Probe) int {
	if lang, ok := d.DetectDefaultLanguage(probes); ok {
		return lang
	}
	return 0
}
