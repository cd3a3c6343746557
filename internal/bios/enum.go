package bios

// EnumAttribute is a BIOS enumeration attribute: a closed set of
// attribute-string values, with an optional mapping from an object-bus
// property value (its string form, since D-Bus property values arrive as
// heterogeneous variants) to the attribute string it corresponds to.
type EnumAttribute struct {
	Name          string
	ReadOnly      bool
	PossibleValues []string
	DefaultValues  []string
	DBusValueMap   map[string]string
}

// CurrentValue resolves the attribute's current value: the attribute
// string mapped from busValue if one exists, otherwise the first default.
func (a EnumAttribute) CurrentValue(busValue string) string {
	if v, ok := a.DBusValueMap[busValue]; ok {
		return v
	}
	if len(a.DefaultValues) > 0 {
		return a.DefaultValues[0]
	}
	return ""
}

func (a EnumAttribute) contains(value string) bool {
	for _, v := range a.PossibleValues {
		if v == value {
			return true
		}
	}
	return false
}
