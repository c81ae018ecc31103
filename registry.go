package envnode

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrMissingInput is returned by Invoke when the host omits a declared input
	ErrMissingInput = errors.New("missing node input")
	// ErrDuplicate is returned when a descriptor name is already registered
	ErrDuplicate = errors.New("descriptor already registered")
)

const (
	// NodeName is the name the node is registered under
	NodeName = "EnvironmentVariableNode"
	// InputName is the node's single input
	InputName = "env_variable"
	// OutputName is the node's single output
	OutputName = "env_value"
	// StringType is the host's string port type
	StringType = "STRING"
)

// Port declares one input or output of a node
type Port struct {
	Name    string
	Type    string
	Options []string
	Default string
}

// Descriptor is what a host needs to list, render and invoke a node
type Descriptor struct {
	Name        string
	DisplayName string
	Category    string
	Description string
	// Inputs is evaluated each time the host builds the node's UI
	Inputs  func(ctx context.Context) []Port
	Outputs []Port
	Invoke  func(ctx context.Context, inputs map[string]string) ([]string, error)
}

// Descriptor describes n to a host
func (n *Node) Descriptor() Descriptor {
	return Descriptor{
		Name:        NodeName,
		DisplayName: "Environment Variable Reader",
		Category:    "utils",
		Description: "Read environment variables from .env file and output selected variable value",
		Inputs: func(ctx context.Context) []Port {
			names := n.VariableNames(ctx)
			return []Port{{
				Name:    InputName,
				Type:    StringType,
				Options: names,
				Default: names[0],
			}}
		},
		Outputs: []Port{{Name: OutputName, Type: StringType}},
		Invoke:  n.invoke,
	}
}

func (n *Node) invoke(ctx context.Context, inputs map[string]string) ([]string, error) {
	name, ok := inputs[InputName]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", NodeName, ErrMissingInput, InputName)
	}
	// Merge failures are already sent to Hooks and never stop the node from answering
	_ = n.Load(ctx)
	return []string{n.Value(ctx, name)}, nil
}

// Registry maps descriptor names to descriptors.  The host owns it.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// Register adds d under d.Name
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.New("descriptor has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("%s: %w", d.Name, ErrDuplicate)
	}
	if r.descriptors == nil {
		r.descriptors = make(map[string]Descriptor)
	}
	r.descriptors[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered under name
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns every registered name, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// DisplayNames maps each registered name to its display name
func (r *Registry) DisplayNames() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make(map[string]string, len(r.descriptors))
	for name, d := range r.descriptors {
		ret[name] = d.DisplayName
	}
	return ret
}

// Register adds n's descriptor to r
func Register(r *Registry, n *Node) error {
	return r.Register(n.Descriptor())
}
