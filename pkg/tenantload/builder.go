package tenantload

// RuleSet builds an ordered list of rules with a fluent API.
//
// Settings are sticky: key, lead, strategy, filter and accepted statuses
// apply to every Add that follows until they are changed again.
//
//	rules := tenantload.NewRuleSet().
//	    WithKey("loadReference").WithLead("ref-data").
//	    Add("groups").
//	    WithKey("loadSample").WithLead("sample-data").
//	    Add("users").
//	    Rules()
type RuleSet struct {
	next  LoadRule
	rules []LoadRule
}

// NewRuleSet returns an empty RuleSet using the content strategy on field "id".
func NewRuleSet() *RuleSet {
	return &RuleSet{
		next: LoadRule{
			Strategy:   StrategyContent,
			IDProperty: DefaultIDProperty,
		},
	}
}

// WithKey sets the tenant flag that triggers the following rules.
// By convention "loadReference" for reference data and "loadSample" for sample data.
func (b *RuleSet) WithKey(key string) *RuleSet {
	b.next.Key = key
	return b
}

// WithLead sets the leading directory of the following rules.
func (b *RuleSet) WithLead(lead string) *RuleSet {
	b.next.Lead = lead
	return b
}

// WithIDContent takes the identifier from the JSON field "id".
func (b *RuleSet) WithIDContent() *RuleSet {
	return b.WithContent(DefaultIDProperty)
}

// WithContent takes the identifier from a custom JSON field.
func (b *RuleSet) WithContent(idProperty string) *RuleSet {
	b.next.IDProperty = idProperty
	b.next.Strategy = StrategyContent
	return b
}

// WithIDBasename takes the identifier from the file name without extension.
func (b *RuleSet) WithIDBasename() *RuleSet {
	b.next.Strategy = StrategyBasename
	return b
}

// WithIDRaw sends a PUT to the URI path with no identifier.
func (b *RuleSet) WithIDRaw() *RuleSet {
	b.next.Strategy = StrategyRawPut
	return b
}

// WithPostOnly sends a POST to the URI path with no identifier.
func (b *RuleSet) WithPostOnly() *RuleSet {
	b.next.Strategy = StrategyRawPost
	return b
}

// WithFilter rewrites content before it is loaded.
func (b *RuleSet) WithFilter(filter ContentFilter) *RuleSet {
	b.next.Filter = filter
	return b
}

// WithAcceptStatus accepts an extra status code. Repeated calls accumulate.
func (b *RuleSet) WithAcceptStatus(code int) *RuleSet {
	b.next.AcceptStatus = append(b.next.AcceptStatus, code)
	return b
}

// AddURI adds a rule loading lead/filePath to uriPath.
func (b *RuleSet) AddURI(filePath, uriPath string) *RuleSet {
	rule := b.next.Clone()
	rule.FilePath = filePath
	rule.URIPath = uriPath
	b.rules = append(b.rules, rule)
	return b
}

// Add adds a rule whose file path and URI path are the same.
func (b *RuleSet) Add(path string) *RuleSet {
	return b.AddURI(path, path)
}

// Rules returns copies of the rules added so far, in order.
func (b *RuleSet) Rules() []LoadRule {
	out := make([]LoadRule, len(b.rules))
	for i, r := range b.rules {
		out[i] = r.Clone()
	}
	return out
}
