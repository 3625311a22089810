package fsmdef

import (
	"errors"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// Encode writes cfg as a YAML definition document that Decode reads back.
// States keep config order; events within a state are sorted by name.
func Encode(cfg *fsm.Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.Join(ErrFailedToEncode, fsm.ErrMissingConfig)
	}

	states := mapping()
	for _, name := range cfg.StateNames() {
		def, _ := cfg.Transitions(name)

		body := mapping()
		if len(def) > 0 {
			transitions := mapping()
			for _, event := range slices.Sorted(maps.Keys(def)) {
				transitions.Content = append(transitions.Content, scalar(event), scalar(def[event]))
			}
			body.Content = append(body.Content, scalar(keyTransitions), transitions)
		} else {
			body.Style = yaml.FlowStyle
		}

		states.Content = append(states.Content, scalar(name), body)
	}

	root := mapping()
	root.Content = append(root.Content,
		scalar(keyInitial), scalar(cfg.Initial()),
		scalar(keyStates), states,
	)

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, errors.Join(ErrFailedToEncode, err)
	}
	return out, nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
