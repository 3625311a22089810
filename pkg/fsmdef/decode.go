package fsmdef

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

const (
	keyInitial     = "initial"
	keyStates      = "states"
	keyTransitions = "transitions"
)

// Decode parses a definition document into a Config.
//
// The document has the shape
//
//	initial: normal
//	states:
//	  normal:
//	    transitions:
//	      study: busy
//	  busy: {}
//
// JSON documents of the same shape are accepted as well. States keep their
// document order. A state without a transitions key handles no events.
func Decode(ctx context.Context, data []byte) (*fsm.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, invalid(root, "top level must be a mapping")
	}

	var (
		initial   string
		states    []fsm.StateSpec
		hasStates bool
	)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case keyInitial:
			if value.Kind != yaml.ScalarNode {
				return nil, invalid(value, "initial must be a string")
			}
			initial = value.Value
		case keyStates:
			parsed, err := decodeStates(ctx, value)
			if err != nil {
				return nil, err
			}
			states, hasStates = parsed, true
		default:
			return nil, invalid(key, fmt.Sprintf("unknown key '%s'", key.Value))
		}
	}

	if initial == "" {
		return nil, fmt.Errorf("%w: missing '%s'", ErrInvalidDocument, keyInitial)
	}
	if !hasStates {
		return nil, fmt.Errorf("%w: missing '%s'", ErrInvalidDocument, keyStates)
	}

	cfg, err := fsm.NewConfig(initial, states...)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return cfg, nil
}

func decodeStates(ctx context.Context, node *yaml.Node) ([]fsm.StateSpec, error) {
	if node.Kind != yaml.MappingNode {
		return nil, invalid(node, "states must be a mapping")
	}

	states := make([]fsm.StateSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrParsingCancelled, err)
		}

		name, body := node.Content[i], node.Content[i+1]
		spec := fsm.StateSpec{Name: name.Value}

		switch {
		case isNull(body):
		case body.Kind == yaml.MappingNode:
			transitions, err := decodeStateBody(name.Value, body)
			if err != nil {
				return nil, err
			}
			spec.Transitions = transitions
		default:
			return nil, invalid(body, fmt.Sprintf("state '%s' must be a mapping", name.Value))
		}

		states = append(states, spec)
	}
	return states, nil
}

func decodeStateBody(state string, body *yaml.Node) ([]fsm.Transition, error) {
	var transitions []fsm.Transition
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]
		if key.Value != keyTransitions {
			return nil, invalid(key, fmt.Sprintf("state '%s' has unknown key '%s'", state, key.Value))
		}
		if isNull(value) {
			continue
		}
		if value.Kind != yaml.MappingNode {
			return nil, invalid(value, fmt.Sprintf("transitions of state '%s' must be a mapping", state))
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			event, target := value.Content[j], value.Content[j+1]
			if target.Kind != yaml.ScalarNode || isNull(target) {
				return nil, invalid(target, fmt.Sprintf("target of '%s' in state '%s' must be a state name", event.Value, state))
			}
			transitions = append(transitions, fsm.On(event.Value, target.Value))
		}
	}
	return transitions, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func invalid(n *yaml.Node, msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidDocument, n.Line, msg)
}
