package epdimg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const outputExt = ".py"

// WritePython writes the bitmap as Python source defining width, height,
// img_bw and, for two-plane bitmaps only, img_red.
func WritePython(w io.Writer, b *Bitmap) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width = %d\n", b.Width)
	fmt.Fprintf(bw, "height = %d\n", b.Height)
	fmt.Fprintf(bw, "img_bw = %s\n", pyByteArray(b.BW))
	if b.Red != nil {
		fmt.Fprintf(bw, "img_red = %s\n", pyByteArray(b.Red))
	}
	return bw.Flush()
}

// pyByteArray formats data the way Python's repr does for a bytearray.
func pyByteArray(data []byte) string {
	quote := byte('\'')
	if bytes.IndexByte(data, '\'') >= 0 && bytes.IndexByte(data, '"') < 0 {
		quote = '"'
	}

	var sb strings.Builder
	sb.Grow(len(data)*4 + 16)
	sb.WriteString("bytearray(b")
	sb.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	sb.WriteByte(')')
	return sb.String()
}

// OutputPath derives the output file name. Without a target the source's
// base name is used; the .py extension is appended when missing.
func OutputPath(source, target string) string {
	if target == "" {
		base := filepath.Base(source)
		return strings.TrimSuffix(base, filepath.Ext(base)) + outputExt
	}
	if strings.EqualFold(filepath.Ext(target), outputExt) {
		return target
	}
	return target + outputExt
}

// WriteFile writes the bitmap to path through a temporary file in the same
// directory, so path either holds complete output or is left untouched.
func WriteFile(path string, b *Bitmap) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WritePython(tmp, b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
