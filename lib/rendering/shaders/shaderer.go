package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	VertexTemplate   = "triangle.vert"
	FragmentTemplate = "triangle.frag"
)

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.New("").
		Funcs(template.FuncMap{"float": glslFloat}).
		ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	Version string
	Colour  mgl32.Vec4
}

// DefaultShaderData targets a 3.3 core profile and paints solid red.
func DefaultShaderData() *ShaderData {
	return &ShaderData{
		Version: "330 core",
		Colour:  mgl32.Vec4{1, 0, 0, 1},
	}
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %s", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		if t.Name() == "" {
			continue
		}
		names = append(names, t.Name())
	}
	return names
}

// glslFloat always renders a decimal point so the literal is a float.
func glslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
