// report.go: a plain-data description of a chain.
//
// A Report is what an operator wants to see about an error without holding
// the handle: every layer's message, payload type and debug text, and
// whether the layer would lose information on Serialize (Dropped). It is
// tagged for JSON and YAML; YAML renders it directly.
package xgxchain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Layer describes one layer of a chain.
type Layer struct {
	Message  string `json:"message" yaml:"message"`
	Sentinel bool   `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
	Payload  string `json:"payload,omitempty" yaml:"payload,omitempty"`
	TypeURL  string `json:"type_url,omitempty" yaml:"type_url,omitempty"`
	Debug    string `json:"debug,omitempty" yaml:"debug,omitempty"`
	// Dropped is set when Serialize would write the layer as a bare message:
	// a sentinel's identity, or a payload that cannot be encoded.
	Dropped bool `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// Report describes a whole chain, outermost layer first.
type Report struct {
	Message string  `json:"message" yaml:"message"`
	Layers  []Layer `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// Describe builds a Report for e. A Nil handle yields a Report with
// Message "(nil)" and no layers.
func Describe(e Error) Report {
	r := Report{Message: e.Message()}
	walk(e, func(l *Error) bool {
		n := l.n
		layer := Layer{
			Message:  n.text(),
			Sentinel: l.IsSentinel(),
			Debug:    n.debug(),
		}
		if v, ok := n.value(); ok {
			layer.Payload = fmt.Sprintf("%T", v)
		}
		typeURL, _, ok := n.wire()
		layer.TypeURL = typeURL
		layer.Dropped = !ok
		r.Layers = append(r.Layers, layer)
		return true
	})
	return r
}

// Dropped reports whether any layer would lose information on Serialize.
func (r Report) Dropped() bool {
	for _, l := range r.Layers {
		if l.Dropped {
			return true
		}
	}
	return false
}

// YAML renders the report as a YAML document.
func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
