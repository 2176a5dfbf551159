package variant

// Registry holds known variants indexed by their human-readable name,
// as looked up per §6.3 ("the core looks up variants by human-readable
// name"). In production the name/suit table would come from the
// upstream JSON feed (out of core scope); Registry gives the core a
// concrete, built-in table to resolve well-known variant names against
// when no externally-fetched table has been supplied, and is the shape
// an externally-fetched table is normalized into via Register.
type Registry struct {
	variants map[string]*Variant
	order    []string // registration order for deterministic AllVariants()
}

// NewRegistry creates an empty variant registry.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]*Variant)}
}

// Register adds or replaces a variant under its own Name.
func (r *Registry) Register(v *Variant) {
	if _, exists := r.variants[v.Name]; !exists {
		r.order = append(r.order, v.Name)
	}
	r.variants[v.Name] = v
}

// Get resolves a variant by name, reporting false if unknown.
func (r *Registry) Get(name string) (*Variant, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// AllVariants returns every registered variant in registration order.
func (r *Registry) AllVariants() []*Variant {
	out := make([]*Variant, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.variants[name])
	}
	return out
}

func suit(name string, cats ...Category) Suit {
	return Suit{Name: name, Categories: cats}
}

// resolveShortForms assigns ShortForm to each suit using the §6.3
// normalization rule (Black->k, Pink->i, Brown->n, else first unused
// lowercase letter of the suit name).
func resolveShortForms(suits []Suit) []Suit {
	taken := make(map[string]bool, len(suits))
	out := make([]Suit, len(suits))
	for i, s := range suits {
		short := ShortForm(s.Name, taken)
		taken[short] = true
		s.ShortForm = short
		out[i] = s
	}
	return out
}

// NewStandardRegistry returns a Registry pre-populated with the handful
// of variant names referenced directly in §6.3: "No Variant", "Pink (5
// Suits)", "Rainbow (5 Suits)", "6 Suits", and "Brown (5 Suits)".
func NewStandardRegistry() *Registry {
	r := NewRegistry()

	noVariant := &Variant{
		ID:   0,
		Name: "No Variant",
		Suits: resolveShortForms([]Suit{
			suit("Red"), suit("Yellow"), suit("Green"), suit("Blue"), suit("Purple"),
		}),
	}
	r.Register(noVariant)

	pink := &Variant{
		ID:   1,
		Name: "Pink (5 Suits)",
		Suits: resolveShortForms([]Suit{
			suit("Red"), suit("Yellow"), suit("Green"), suit("Blue"), suit("Pink", CategoryPinkish),
		}),
	}
	r.Register(pink)

	rainbow := &Variant{
		ID:   2,
		Name: "Rainbow (5 Suits)",
		Suits: resolveShortForms([]Suit{
			suit("Red"), suit("Yellow"), suit("Green"), suit("Blue"), suit("Rainbow", CategoryRainbowish),
		}),
	}
	r.Register(rainbow)

	sixSuits := &Variant{
		ID:   3,
		Name: "6 Suits",
		Suits: resolveShortForms([]Suit{
			suit("Red"), suit("Yellow"), suit("Green"), suit("Blue"), suit("Purple"), suit("Teal"),
		}),
	}
	r.Register(sixSuits)

	brown := &Variant{
		ID:   4,
		Name: "Brown (5 Suits)",
		Suits: resolveShortForms([]Suit{
			suit("Red"), suit("Yellow"), suit("Green"), suit("Blue"), suit("Brown", CategoryBrownish),
		}),
	}
	r.Register(brown)

	return r
}
