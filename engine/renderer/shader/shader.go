package shader

import (
	"fmt"
	"os"
)

// ShaderType identifies which render stage a shader feeds.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	}
	return "unknown"
}

// Binding is a resource declaration found in WGSL source:
//
//	@group(G) @binding(B) var<space> name: type;
type Binding struct {
	Group        uint32
	Binding      uint32
	AddressSpace string
	Name         string
	Type         string
}

// Shader holds one WGSL source text and what the renderer needs to build a
// pipeline stage from it.
type Shader struct {
	key        string
	path       string
	source     string
	shaderType ShaderType
	entryPoint string
	bindings   []Binding
}

// Load reads a WGSL source file from disk and parses it. A missing or
// unreadable file is reported with its path.
//
// Parameters:
//   - key: identifier used for GPU labels
//   - shaderType: the stage the source provides
//   - path: path to the WGSL file
//
// Returns:
//   - *Shader: the parsed shader
//   - error: if the file cannot be read or has no entry point for shaderType
func Load(key string, shaderType ShaderType, path string) (*Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to read source file %q: %w", path, err)
	}
	s, err := Parse(key, shaderType, string(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	s.path = path
	return s, nil
}

// Parse builds a Shader from WGSL source text.
//
// Parameters:
//   - key: identifier used for GPU labels
//   - shaderType: the stage the source provides
//   - source: WGSL source
//
// Returns:
//   - *Shader: the parsed shader
//   - error: if source has no entry point for shaderType
func Parse(key string, shaderType ShaderType, source string) (*Shader, error) {
	cleaned := stripComments(source)
	entry := parseEntryPoint(cleaned, shaderType)
	if entry == "" {
		return nil, fmt.Errorf("shader: %s has no @%s entry point", key, shaderType)
	}
	return &Shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entry,
		bindings:   parseBindings(cleaned),
	}, nil
}

func (s *Shader) Key() string            { return s.key }
func (s *Shader) Path() string           { return s.path }
func (s *Shader) Source() string         { return s.source }
func (s *Shader) ShaderType() ShaderType { return s.shaderType }
func (s *Shader) EntryPoint() string     { return s.entryPoint }
func (s *Shader) Bindings() []Binding    { return s.bindings }

// Binding looks up the declaration at group/binding.
//
// Returns:
//   - Binding: the declaration
//   - bool: false if the source declares nothing there
func (s *Shader) Binding(group, binding uint32) (Binding, bool) {
	for _, b := range s.bindings {
		if b.Group == group && b.Binding == binding {
			return b, true
		}
	}
	return Binding{}, false
}
