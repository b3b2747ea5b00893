package protoreg

import (
	"io"
	"os"
	"path"

	"github.com/jhump/protoreflect/v2/protoprint"
)

// Render writes every file of the registry below outDir, at the path
// recorded in its descriptor.
func Render(r *Registry, outDir string) error {
	for _, fd := range r.GetAllFiles() {
		fp := path.Join(outDir, fd.Path())
		if err := os.MkdirAll(path.Dir(fp), 0755); err != nil {
			return err
		}
		if err := renderFile(r, fp, fd.Path()); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(r *Registry, fp, protoPath string) error {
	openedFile, err := os.OpenFile(fp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer openedFile.Close()
	return Print(r, protoPath, openedFile)
}

// Print writes the file with the given proto path to w.
func Print(r *Registry, protoPath string, w io.Writer) error {
	pp := protoprint.Printer{}
	for _, fd := range r.GetAllFiles() {
		if fd.Path() == protoPath {
			return pp.PrintProtoFile(fd, w)
		}
	}
	return os.ErrNotExist
}
