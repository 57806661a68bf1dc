package vdom

import (
	"strconv"
	"strings"
)

// booleanAttrs are rendered as bare names when true and omitted when false.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"open":      true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// IsBooleanAttr reports whether key is a boolean HTML attribute.
func IsBooleanAttr(key string) bool {
	return booleanAttrs[key]
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrValue converts an attribute value to its DOM string. The second
// result is false when the attribute should be absent.
func AttrValue(key string, value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
		if booleanAttrs[key] {
			return "", true
		}
		return "true", true
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return Stringify(v), true
	}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", strconv.FormatBool(hidden)) }

// Other attributes

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// AttrKV creates an arbitrary attribute.
func AttrKV(key string, value any) Attr { return attr(key, value) }

// Bound attributes

// BindAttr binds the attribute key to context slot.
func BindAttr(key string, slot int) Binding {
	return Binding{Key: key, Slot: slot}
}

// BindAttrf binds the attribute key to context slot through f.
func BindAttrf(key string, slot int, f Formatter) Binding {
	return Binding{Key: key, Slot: slot, Format: f}
}
