package parse

// Parameter is a single named process parameter. A parameter may carry a
// value, an allowed [Min,Max] range, or both, plus an optional unit label.
type Parameter struct {
	Name     string
	Value    float64
	HasValue bool
	Min      float64
	Max      float64
	HasRange bool
	Unit     string
}

// ParameterSet holds parameters in insertion order with unique names.
// Re-adding a name overwrites the earlier entry in place.
type ParameterSet struct {
	params []Parameter
	index  map[string]int

	// Skipped lists entries dropped during parsing, with reasons.
	Skipped []string
}

// NewParameterSet returns an empty set.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{index: make(map[string]int)}
}

// Add inserts or replaces a parameter.
func (s *ParameterSet) Add(p Parameter) {
	if i, ok := s.index[p.Name]; ok {
		s.params[i] = p
		return
	}
	s.index[p.Name] = len(s.params)
	s.params = append(s.params, p)
}

// Get returns the parameter with the given name.
func (s *ParameterSet) Get(name string) (Parameter, bool) {
	if i, ok := s.index[name]; ok {
		return s.params[i], true
	}
	return Parameter{}, false
}

// Names returns parameter names in insertion order.
func (s *ParameterSet) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Parameters returns all parameters in insertion order.
func (s *ParameterSet) Parameters() []Parameter {
	out := make([]Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Len returns the number of parameters.
func (s *ParameterSet) Len() int {
	return len(s.params)
}

// Tolerance is an allowed deviation for a parameter, either absolute or
// relative (percentage of the baseline value).
type Tolerance struct {
	Value    float64
	Relative bool
}

// ToleranceSet maps parameter names to tolerances, preserving order.
type ToleranceSet struct {
	names   []string
	entries map[string]Tolerance

	Skipped []string
}

// NewToleranceSet returns an empty tolerance set.
func NewToleranceSet() *ToleranceSet {
	return &ToleranceSet{entries: make(map[string]Tolerance)}
}

// Add inserts or replaces a tolerance.
func (s *ToleranceSet) Add(name string, t Tolerance) {
	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}
	s.entries[name] = t
}

// Get returns the tolerance for a parameter name.
func (s *ToleranceSet) Get(name string) (Tolerance, bool) {
	t, ok := s.entries[name]
	return t, ok
}

// Len returns the number of tolerances.
func (s *ToleranceSet) Len() int {
	return len(s.names)
}

// ImpactRule projects the effect of changing a source parameter onto a target
// metric. Source may be empty for legacy rules, which apply their effect
// once per evaluation when any change is proposed. PerUnit > 0 scales the
// effect by change/PerUnit;
// PerUnit == 0 applies the effect once per triggering change.
type ImpactRule struct {
	Source  string
	Target  string
	Effect  float64
	PerUnit float64
}

// Change records a proposed parameter move with its yield sensitivity
// (projected yield delta per unit of parameter change).
type Change struct {
	Param       string
	Start       float64
	End         float64
	Sensitivity float64
}

// Interaction is an extra effect applied once when both named parameters are
// changed together. Target names the affected metric; empty means the
// evaluation's headline metric (e.g. yield).
type Interaction struct {
	ParamA string
	ParamB string
	Target string
	Effect float64
}

// Group is a named section of key-value metrics, e.g. one equipment's metric
// block or the "recipe" section of a state string.
type Group struct {
	Name   string
	Order  []string
	Values map[string]float64
}

// Get returns a metric value from the group.
func (g *Group) Get(name string) (float64, bool) {
	v, ok := g.Values[name]
	return v, ok
}
