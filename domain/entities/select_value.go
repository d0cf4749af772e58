package entities

// SelectKind discriminates the SelectValue variants
type SelectKind int

const (
	SelectByValue SelectKind = iota
	SelectByValues
	SelectByOption
)

// SelectValue is the input of a dropdown selection. Build it with
// ByValue, ByValues or ByOption.
type SelectValue struct {
	Kind   SelectKind
	Values []string
	Option SelectOption
}

// SelectOption picks a single option by value, label or index. When
// more than one field is set, Value wins over Label, Label over Index.
type SelectOption struct {
	Value string
	Label string
	Index *int
}

// ByValue selects one option matching value or label.
func ByValue(v string) SelectValue {
	return SelectValue{Kind: SelectByValue, Values: []string{v}}
}

// ByValues selects several options of a multi-select.
func ByValues(v ...string) SelectValue {
	return SelectValue{Kind: SelectByValues, Values: v}
}

// ByOption selects with an explicit option descriptor.
func ByOption(o SelectOption) SelectValue {
	return SelectValue{Kind: SelectByOption, Option: o}
}

// OptionIndex - helper for SelectOption.Index
func OptionIndex(i int) *int {
	return &i
}
