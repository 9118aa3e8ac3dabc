package nodetype

import "github.com/zclconf/go-cty/cty"

// ParamFloat reads a numeric persistable field, returning 0 for an unset
// field with no declared default.
func ParamFloat(n Node, name string) float64 {
	v := n.Param(name)
	if v == cty.NilVal || v.IsNull() || !v.Type().Equals(cty.Number) {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}

// ParamInt reads a numeric persistable field truncated to int.
func ParamInt(n Node, name string) int {
	return int(ParamFloat(n, name))
}

// ParamString reads a string persistable field, returning "" when unset.
func ParamString(n Node, name string) string {
	v := n.Param(name)
	if v == cty.NilVal || v.IsNull() || !v.Type().Equals(cty.String) {
		return ""
	}
	return v.AsString()
}
