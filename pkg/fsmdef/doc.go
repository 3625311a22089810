// Package fsmdef reads and writes fsm.Config definitions as YAML or JSON documents.
//
// A definition mirrors the engine's configuration shape:
//
//	initial: normal
//	states:
//	  normal:
//	    transitions:
//	      study: busy
//	  busy:
//	    transitions:
//	      get_hungry: hungry
//	  hungry:
//	    transitions:
//	      eat: normal
//
// Documents are walked through gopkg.in/yaml.v3 nodes rather than decoded into
// Go maps so that state order, which drives fsm.Machine.States and StatesOn,
// follows the document. JSON is read by the same decoder.
//
// Decode applies the engine's structural checks only. Dangling transition
// targets are accepted; call Validate on the result, or build the machine with
// fsm.WithStrictValidation, to reject them.
package fsmdef
