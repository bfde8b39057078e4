package models

// Binding associates an InputPattern with an Action in a specific Mode.
// Priority breaks ties between multiple matching bindings; higher wins.
type Binding struct {
	Pattern     InputPattern
	Action      Action
	Priority    uint8
	Enabled     bool
	Mode        Mode
	Description string
}

// NewBinding builds a Binding with the registry's default priority (50),
// enabled, following the builder-default convention used throughout.
func NewBinding(pattern InputPattern, action Action, mode Mode) Binding {
	return Binding{
		Pattern:  pattern,
		Action:   action,
		Priority: 50,
		Enabled:  true,
		Mode:     mode,
	}
}

// WithPriority returns a copy of b with Priority set.
func (b Binding) WithPriority(p uint8) Binding {
	b.Priority = p
	return b
}

// WithDescription returns a copy of b with Description set.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithEnabled returns a copy of b with Enabled set.
func (b Binding) WithEnabled(enabled bool) Binding {
	b.Enabled = enabled
	return b
}
