package shaders

import (
	"errors"
	"fmt"

	"github.com/aum-visual/aumgfx/lib/gpu"
	"github.com/aum-visual/aumgfx/lib/readout"
)

var ErrSourceFrozen = errors.New("shader source cannot change after compilation")

// Program is a linked GL program object.
type Program uint32

// Compiler holds a vertex and a fragment source and turns them into a
// program. Sources are frozen by the first call to Compile.
type Compiler struct {
	vertexSource   string
	fragmentSource string
	frozen         bool
}

// Default returns a compiler loaded with the pass-through vertex shader
// and the constant red fragment shader.
func Default() (*Compiler, error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return nil, fmt.Errorf("could not get shaders: %w", err)
	}
	data := DefaultShaderData()

	vertexShader, err := shaderer.GetShaderSource(VertexTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := shaderer.GetShaderSource(FragmentTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("could not get fragment shader: %w", err)
	}

	return &Compiler{vertexSource: vertexShader, fragmentSource: fragmentShader}, nil
}

func (c *Compiler) SetVertexSource(source string) error {
	if c.frozen {
		return ErrSourceFrozen
	}
	c.vertexSource = source
	return nil
}

func (c *Compiler) SetFragmentSource(source string) error {
	if c.frozen {
		return ErrSourceFrozen
	}
	c.fragmentSource = source
	return nil
}

func (c *Compiler) VertexSource() string {
	return c.vertexSource
}

func (c *Compiler) FragmentSource() string {
	return c.fragmentSource
}

// Compile builds both stages and links them. Every GL object created on
// the way is deleted before an error is returned; on success only the
// program remains.
func (c *Compiler) Compile(g gpu.GL) (Program, error) {
	c.frozen = true

	vertexShader, err := compileShader(g, c.vertexSource, gpu.VertexStage)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(g, c.fragmentSource, gpu.FragmentStage)
	if err != nil {
		g.DeleteShader(vertexShader)
		return 0, err
	}

	program := g.CreateProgram()

	g.AttachShader(program, vertexShader)
	g.AttachShader(program, fragmentShader)
	g.LinkProgram(program)

	// shaders are no longer needed once linking has been attempted
	g.DetachShader(program, vertexShader)
	g.DetachShader(program, fragmentShader)
	g.DeleteShader(vertexShader)
	g.DeleteShader(fragmentShader)

	if !g.ProgramLinked(program) {
		logmsg := g.ProgramInfoLog(program)
		g.DeleteProgram(program)
		return 0, readout.Fail(readout.ShaderLinkFailed, logmsg,
			fmt.Errorf("failed to link program"))
	}

	return Program(program), nil
}

func compileShader(g gpu.GL, source string, stage gpu.ShaderStage) (uint32, error) {
	shader := g.CreateShader(stage)

	g.ShaderSource(shader, source)
	g.CompileShader(shader)

	if !g.ShaderCompiled(shader) {
		clog := g.ShaderInfoLog(shader)
		g.DeleteShader(shader)
		return 0, readout.Fail(readout.ShaderCompileFailed, clog,
			fmt.Errorf("failed to compile %s shader", stage))
	}

	return shader, nil
}
