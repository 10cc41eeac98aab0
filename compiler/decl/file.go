package decl

import (
	"io"

	"github.com/dave/jennifer/jen"
)

// File is a generated Go source file: declarations in insertion order,
// followed by free standing statements.
type File struct {
	Package string
	// Name is the file name relative to the output directory.
	Name         string
	Header       string
	Declarations []*Declaration
	// Extra holds statements rendered after the declarations.
	Extra []jen.Code

	aliases [][2]string
}

// NewFile returns an empty file of package pkg.
func NewFile(pkg, name string) *File {
	return &File{Package: pkg, Name: name}
}

// Add appends d to the file.
func (f *File) Add(d *Declaration) *File {
	f.Declarations = append(f.Declarations, d)
	return f
}

// AddStatement appends a statement rendered after the declarations.
func (f *File) AddStatement(code ...jen.Code) *File {
	f.Extra = append(f.Extra, jen.Add(code...))
	return f
}

// ImportAlias sets the name an import path is referenced by.
func (f *File) ImportAlias(path, alias string) *File {
	f.aliases = append(f.aliases, [2]string{path, alias})
	return f
}

// Declaration returns the first declaration of the file.
func (f *File) Declaration() (*Declaration, bool) {
	if len(f.Declarations) == 0 {
		return nil, false
	}
	return f.Declarations[0], true
}

// Jen renders the file into a new jennifer file.
func (f *File) Jen() *jen.File {
	jf := jen.NewFile(f.Package)
	if f.Header != "" {
		jf.HeaderComment(f.Header)
	}
	for _, a := range f.aliases {
		jf.ImportAlias(a[0], a[1])
	}
	for _, d := range f.Declarations {
		d.render(jf)
	}
	for _, s := range f.Extra {
		jf.Add(s)
	}
	return jf
}

// Render writes the formatted source of f to w.
func (f *File) Render(w io.Writer) error {
	return f.Jen().Render(w)
}

// GoString returns the formatted source of f. Rendering errors are returned
// in place of the source, as jennifer does.
func (f *File) GoString() string {
	return f.Jen().GoString()
}
