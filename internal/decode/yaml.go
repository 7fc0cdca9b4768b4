package decode

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

const mergeTag = "!!merge"

// Alias expansion limits, matching the ratio yaml.v3 applies when it decodes
// into Go values itself. Documents below both floors are never rejected.
const (
	aliasFloor     = 100
	nodeFloor      = 1000
	ratioRangeLow  = 400000
	ratioRangeHigh = 4000000
	ratioAtLow     = 0.99
	ratioAtHigh    = 0.10
)

// allowedAliasRatio is the share of decoded nodes that may come from alias
// expansion once count nodes have been decoded.
func allowedAliasRatio(count int) float64 {
	switch {
	case count <= ratioRangeLow:
		return ratioAtLow
	case count >= ratioRangeHigh:
		return ratioAtHigh
	default:
		span := float64(count-ratioRangeLow) / float64(ratioRangeHigh-ratioRangeLow)
		return ratioAtLow - (ratioAtLow-ratioAtHigh)*span
	}
}

// yamlDecoder converts a node tree. It works on nodes rather than unmarshaling
// into maps, which would lose the key order of mappings, and so has to guard
// alias expansion itself.
type yamlDecoder struct {
	// expanding holds the anchors whose alias is being expanded.
	expanding map[*yaml.Node]bool
	// depth counts open alias expansions.
	depth   int
	nodes   int
	aliased int
}

func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(FormatYAML, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return globopts.Undefined, nil
	}
	d := &yamlDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.value(doc.Content[0])
}

// count records one decoded node and enforces the alias budget.
func (d *yamlDecoder) count() error {
	d.nodes++
	if d.depth > 0 {
		d.aliased++
	}
	if d.aliased > aliasFloor && d.nodes > nodeFloor &&
		float64(d.aliased)/float64(d.nodes) > allowedAliasRatio(d.nodes) {
		return invalid(FormatYAML, errors.Newf("excessive aliasing: %d of %d decoded nodes came from aliases", d.aliased, d.nodes))
	}
	return nil
}

// enter resolves an alias node and marks its anchor as being expanded. The
// returned func ends the expansion.
func (d *yamlDecoder) enter(n *yaml.Node) (*yaml.Node, func(), error) {
	target := n.Alias
	if target == nil {
		return nil, nil, invalid(FormatYAML, errors.Newf("unknown anchor %q at line %d", n.Value, n.Line))
	}
	if d.expanding[target] {
		return nil, nil, invalid(FormatYAML, errors.Newf("anchor %q references itself at line %d", n.Value, n.Line))
	}
	d.expanding[target] = true
	d.depth++
	return target, func() {
		delete(d.expanding, target)
		d.depth--
	}, nil
}

func (d *yamlDecoder) value(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		target, leave, err := d.enter(n)
		if err != nil {
			return nil, err
		}
		defer leave()
		return d.value(target)
	}

	if err := d.count(); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, invalid(FormatYAML, err)
		}
		return v, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return d.mapping(n)
	}
	return nil, invalid(FormatYAML, errors.Newf("unexpected node kind %d at line %d", n.Kind, n.Line))
}

// mapping builds an Object from a mapping node. Keys pulled in with "<<" come
// first and are overridden by keys written in the mapping itself.
func (d *yamlDecoder) mapping(n *yaml.Node) (*globopts.Object, error) {
	obj := globopts.NewObject()

	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Tag != mergeTag {
			continue
		}
		if err := d.merge(obj, n.Content[i+1]); err != nil {
			return nil, err
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Tag == mergeTag {
			continue
		}
		val, err := d.value(v)
		if err != nil {
			return nil, err
		}
		obj.Set(keyString(k), val)
	}
	return obj, nil
}

func (d *yamlDecoder) merge(obj *globopts.Object, src *yaml.Node) error {
	if src.Kind == yaml.AliasNode {
		target, leave, err := d.enter(src)
		if err != nil {
			return err
		}
		defer leave()
		src = target
	}

	switch src.Kind {
	case yaml.MappingNode:
		m, err := d.mapping(src)
		if err != nil {
			return err
		}
		m.Range(func(key string, value any) bool {
			if _, ok := obj.Get(key); !ok {
				obj.Set(key, value)
			}
			return true
		})
		return nil
	case yaml.SequenceNode:
		for _, c := range src.Content {
			if err := d.merge(obj, c); err != nil {
				return err
			}
		}
		return nil
	}
	return invalid(FormatYAML, errors.Newf("map merge requires a mapping at line %d", src.Line))
}

func keyString(k *yaml.Node) string {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		return keyString(k.Alias)
	}
	return k.Value
}
