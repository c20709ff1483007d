package intake

// Checklist describes one checkbox question: its label on the form and the
// canonical option labels, keyed by a stable option key.
type Checklist struct {
	Question string            `yaml:"question"`
	Options  map[string]string `yaml:"options"`
}

// Split reports, for every canonical option, whether it was selected.
// Matching is exact. Selected labels that are not canonical options are
// ignored, since the option list is owned by the form and may drift.
func (c Checklist) Split(v Value) map[string]bool {
	selected := make(map[string]struct{})
	for _, item := range v.Items() {
		selected[item] = struct{}{}
	}

	flags := make(map[string]bool, len(c.Options))
	for key, label := range c.Options {
		_, ok := selected[label]
		flags[key] = ok
	}
	return flags
}
