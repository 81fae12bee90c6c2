package bson

// PartialParserOptions configures a PartialParser. early_exit, schema_id,
// field_order, and auto_learn from the configuration surface (spec §6.3)
// map directly onto these fields.
type PartialParserOptions struct {
	// EarlyExit stops the scan once every target field has been found.
	// A nil pointer — including the zero Options — defaults to true, per
	// spec.md's "early_exit (default on)" contract. Pass ptr(false) to
	// force a full scan to the terminator (useful for measuring
	// full-scan cost; AutoLearn suppresses early-exit internally
	// regardless of this setting).
	EarlyExit *bool
	// SchemaID ties this parser to a learned or declared field order in
	// the process-wide schema registry.
	SchemaID string
	// FieldOrder is an explicit expected order for the ordered matcher.
	// Takes precedence over a registered SchemaID.
	FieldOrder []string
	// AutoLearn records the first parse's observed field order under
	// SchemaID (which must be non-empty) and uses the learned order for
	// every subsequent parse by any parser referencing that id.
	AutoLearn bool
}

// PartialParser streams a document once and extracts only a target set
// of fields, skipping everything else via the value skipper instead of
// decoding it.
type PartialParser struct {
	targets []string
	opts    PartialParserOptions

	matcher interface {
		Matches(string) bool
	}
	ordered *orderedFieldMatcher
}

// ptr returns a pointer to v, for constructing PartialParserOptions'
// optional fields inline (e.g. EarlyExit: ptr(false)).
func ptr[T any](v T) *T { return &v }

// NewPartialParser builds a parser for targetFields under opts. A nil
// opts.EarlyExit defaults to true, matching the zero Options case;
// pass ptr(false) to opt out explicitly.
func NewPartialParser(targetFields []string, opts PartialParserOptions) *PartialParser {
	if opts.EarlyExit == nil {
		opts.EarlyExit = ptr(true)
	}
	p := &PartialParser{targets: targetFields, opts: opts}

	order := opts.FieldOrder
	if len(order) == 0 && opts.SchemaID != "" {
		if learned, ok := GetSchemaFieldOrder(opts.SchemaID); ok {
			order = learned
		}
	}
	if len(order) > 0 {
		p.ordered = newOrderedFieldMatcher(targetFields, order)
		p.matcher = p.ordered
	} else {
		p.matcher = newFieldMatcher(targetFields)
	}
	return p
}

// FastHits returns the ordered matcher's fast-path hit counter, or 0 if
// this parser has no declared or learned order to match against.
func (p *PartialParser) FastHits() int {
	if p.ordered == nil {
		return 0
	}
	return p.ordered.FastHits()
}

// Fallbacks returns the ordered matcher's fallback counter, or 0 if this
// parser has no declared or learned order.
func (p *PartialParser) Fallbacks() int {
	if p.ordered == nil {
		return 0
	}
	return p.ordered.Fallbacks()
}

// Parse streams b once and returns the decoded values of every found
// target field, keyed by name. Fields not present in b are simply absent
// from the result — Parse never errors on a missing target, only on
// malformed input.
func (p *PartialParser) Parse(b []byte) (map[string]Value, error) {
	if p.ordered == nil && len(p.opts.FieldOrder) == 0 && p.opts.SchemaID != "" {
		// The schema may have been registered (or learned by this very
		// parser) after construction; switch to the ordered matcher.
		if learned, ok := GetSchemaFieldOrder(p.opts.SchemaID); ok {
			p.ordered = newOrderedFieldMatcher(p.targets, learned)
			p.matcher = p.ordered
		}
	}
	if p.ordered != nil {
		p.ordered.Reset()
	}

	learning := p.opts.AutoLearn && p.opts.SchemaID != ""
	if learning {
		if _, ok := GetSchemaFieldOrder(p.opts.SchemaID); ok {
			learning = false // already learned; use the fast path instead
		}
	}

	result := make(map[string]Value, len(p.targets))
	var observedOrder []string
	if learning {
		observedOrder = make([]string, 0, 16)
	}

	earlyExit := *p.opts.EarlyExit && !learning
	found := 0
	target := len(p.targets)

	r := NewReader(b)
	_, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}

	for {
		tagByte, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if tagByte == 0x00 {
			break
		}
		tag := Type(tagByte)
		name, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		if learning {
			observedOrder = append(observedOrder, name)
		}

		if p.matcher.Matches(name) {
			val, err := parseValue(r, tag, 0)
			if err != nil {
				return nil, withField(err, name)
			}
			result[name] = val
			found++
			if earlyExit && found == target {
				break
			}
		} else {
			if err := skipValue(r, tag); err != nil {
				return nil, withField(err, name)
			}
		}
	}

	if learning {
		RegisterSchema(p.opts.SchemaID, observedOrder)
	}
	return result, nil
}
