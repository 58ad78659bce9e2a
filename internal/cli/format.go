package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// formatScalar renders one described value for text output. Finite doubles
// are fixed to precision decimal places; NaN and infinities print as NaN,
// +Inf and -Inf.
func formatScalar(v any, precision int32) string {
	switch x := v.(type) {
	case float64:
		if !finite(x) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
		return decimal.NewFromFloat(x).StringFixed(precision)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// writeDescribed writes a described native value as a variant line followed
// by indented "key: value" lines in key order.
func writeDescribed(w io.Writer, indent string, desc map[string]any, precision int32) {
	if variant, ok := desc["variant"].(string); ok {
		fmt.Fprintf(w, "%svariant: %s\n", indent, variant)
	}
	for _, k := range ccs.SortedKeys(desc) {
		if k == "variant" {
			continue
		}
		fmt.Fprintf(w, "%s  %s: %s\n", indent, k, formatScalar(desc[k], precision))
	}
}

// describedText renders desc the way writeDescribed does, as a string.
func describedText(desc map[string]any, precision int32) string {
	var b strings.Builder
	writeDescribed(&b, "", desc, precision)
	return strings.TrimSuffix(b.String(), "\n")
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// jsonFields returns m with NaN and infinite doubles replaced by the strings
// "NaN", "+Inf" and "-Inf", which encoding/json would otherwise reject.
// Maps without such values are returned unchanged.
func jsonFields(m map[string]any) map[string]any {
	var out map[string]any
	for k, v := range m {
		x, ok := v.(float64)
		if !ok || finite(x) {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(m))
			for k2, v2 := range m {
				out[k2] = v2
			}
		}
		out[k] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	if out == nil {
		return m
	}
	return out
}

// jsonDocument encodes obj as a document whose fields are safe for JSON.
func jsonDocument(obj *managed.Object) managed.Document {
	doc := managed.Encode(obj)
	doc.Fields = jsonFields(doc.Fields)
	return doc
}
