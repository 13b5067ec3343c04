package registry

import (
	"strings"
	"unicode"
)

// StripTag splits a vendor tag suffix such as KHR off a name.
func (r *Registry) StripTag(name string) (base, tag string) {
	for _, t := range r.tags {
		if strings.HasSuffix(name, t) && len(name) > len(t) {
			return strings.TrimSuffix(strings.TrimSuffix(name, t), "_"), t
		}
	}
	return name, ""
}

// EnumValueName converts an enumerant to its wrapper spelling:
// VK_RESULT_ERROR_OUT_OF_DATE_KHR of VkResult becomes eErrorOutOfDateKHR and
// VK_CULL_MODE_FRONT_BIT of VkCullModeFlagBits becomes eFront.
func (r *Registry) EnumValueName(enumName, value string, bitmask bool) string {
	base, _ := r.StripTag(strings.TrimPrefix(enumName, "Vk"))
	if bitmask {
		base = strings.TrimSuffix(base, "FlagBits")
	}
	prefix := "VK_" + camelToSnake(base) + "_"

	v, tag := r.StripTag(value)
	v = strings.TrimPrefix(v, prefix)
	v = strings.TrimPrefix(v, "VK_")
	if bitmask {
		v = strings.TrimSuffix(v, "_BIT")
	}
	return "e" + snakeToCamel(v) + tag
}

func camelToSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, c := range runes {
		if i > 0 && unicode.IsUpper(c) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(c))
	}
	return b.String()
}

func snakeToCamel(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		runes := []rune(part)
		for i, c := range runes {
			// letters after a digit stay upper: R8G8B8A8, 2D
			if i == 0 || unicode.IsDigit(runes[i-1]) {
				b.WriteRune(unicode.ToUpper(c))
			} else {
				b.WriteRune(unicode.ToLower(c))
			}
		}
	}
	return b.String()
}
