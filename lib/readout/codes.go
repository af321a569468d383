package readout

import "fmt"

// Code identifies a failure, or the absence of one.
type Code int

const (
	Success Code = iota
	ContextInitFailed
	WindowCreateFailed
	ExtensionLoaderFailed
	ShaderCompileFailed
	ShaderLinkFailed
)

// Category groups failure codes by the phase that raises them.
type Category int

const (
	Initialization Category = iota
	Compilation
)

var (
	errorNames = []string{
		"SUCCESS",
		"CONTEXT_INIT_FAILED",
		"WINDOW_CREATE_FAILED",
		"EXTENSION_LOADER_FAILED",
		"SHADER_COMPILE_FAILED",
		"SHADER_LINK_FAILED",
	}
	categoryNames = []string{
		"INITIALIZATION",
		"COMPILATION",
	}

	// every failure code belongs to exactly one category; SUCCESS has none
	categoryOf = map[Code]Category{
		ContextInitFailed:     Initialization,
		WindowCreateFailed:    Initialization,
		ExtensionLoaderFailed: Initialization,
		ShaderCompileFailed:   Compilation,
		ShaderLinkFailed:      Compilation,
	}

	errorTaxonomy    = mustNew[Code]("Graphics readouts", errorNames)
	categoryTaxonomy = mustNew[Category]("Graphics readout types", categoryNames)
)

// Errors returns the failure code taxonomy.
func Errors() *Taxonomy[Code] {
	return errorTaxonomy
}

// Categories returns the failure category taxonomy.
func Categories() *Taxonomy[Category] {
	return categoryTaxonomy
}

// CategoryOf panics for SUCCESS and for unregistered codes.
func CategoryOf(code Code) Category {
	cat, ok := categoryOf[code]
	if !ok {
		panic(fmt.Sprintf("no failure category for code %d", int(code)))
	}
	return cat
}

// FailureCodes lists every code that has a category, in taxonomy order.
func FailureCodes() []Code {
	var codes []Code
	for i := range errorTaxonomy.Len() {
		if _, ok := categoryOf[Code(i)]; ok {
			codes = append(codes, Code(i))
		}
	}
	return codes
}

func (c Code) String() string {
	return errorTaxonomy.Name(c)
}

func (c Category) String() string {
	return categoryTaxonomy.Name(c)
}
