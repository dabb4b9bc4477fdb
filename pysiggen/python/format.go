package python

import "strings"

// Outer names of the composed display names.
const (
	TupleName    = "Tuple"
	DictName     = "Dict"
	ListName     = "List"
	SetName      = "Set"
	CallableName = "Callable"
)

// Separator joins component names.
const Separator = ", "

// emptyTuple is the display name of a group with no components.
const emptyTuple = TupleName + "[()]"

// FormatGroup renders Tuple[a, b, ...], or Tuple[()] for no components.
func FormatGroup(names []string) string {
	if len(names) == 0 {
		return emptyTuple
	}
	return TupleName + "[" + strings.Join(names, Separator) + "]"
}

// FormatMapping renders Dict[key, value].
func FormatMapping(key, value string) string {
	return DictName + "[" + key + Separator + value + "]"
}

// FormatSequence renders List[element].
func FormatSequence(element string) string {
	return ListName + "[" + element + "]"
}

// FormatSet renders Set[element].
func FormatSet(element string) string {
	return SetName + "[" + element + "]"
}

// FormatSignature renders Callable[[p1, p2], ret]. The caller substitutes
// the no-value name for ret.
func FormatSignature(params []string, ret string) string {
	return CallableName + "[[" + strings.Join(params, Separator) + "]" + Separator + ret + "]"
}
