package peinfo

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/glaze-tools/glaze/internal/messages"
)

// section is the slice of a section header needed for RVA translation.
type section struct {
	virtualAddr uint32
	virtualSize uint32
	rawOffset   uint32
	rawSize     uint32
}

// readImports locates the import data directory via the optional header and
// returns the set of imported module names, lowercased. A missing import
// table yields an empty set: stripped imports are a result, not an error.
func readImports(r io.ReaderAt, path string, optOffset int64, optSize int, numSections int) (map[string]bool, error) {
	imports := map[string]bool{}
	if optSize < 2 {
		return imports, nil
	}
	opt := make([]byte, optSize)
	if _, err := r.ReadAt(opt, optOffset); err != nil {
		return nil, malformed(path, truncatedAt("optional header"))
	}

	// The data directory array sits at a magic-dependent offset.
	var dirOffset int
	switch binary.LittleEndian.Uint16(opt[0:]) {
	case magicPE32:
		dirOffset = 96
	case magicPE32Plus:
		dirOffset = 112
	default:
		return nil, unsupported(path, messages.AnalyzeBadOptionalReason)
	}
	if dirOffset-4 >= optSize {
		return imports, nil
	}
	numDirs := int(binary.LittleEndian.Uint32(opt[dirOffset-4:]))
	if numDirs <= importDirIndex || dirOffset+(importDirIndex+1)*8 > optSize {
		return imports, nil
	}
	importRVA := binary.LittleEndian.Uint32(opt[dirOffset+importDirIndex*8:])
	if importRVA == 0 {
		return imports, nil
	}

	sections, err := readSections(r, path, optOffset+int64(optSize), numSections)
	if err != nil {
		return nil, err
	}

	walkImportTable(r, sections, importRVA, imports)
	return imports, nil
}

func readSections(r io.ReaderAt, path string, offset int64, count int) ([]section, error) {
	buf := make([]byte, count*sectionHdrSize)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return nil, malformed(path, truncatedAt("section table"))
	}
	sections := make([]section, 0, count)
	for i := 0; i < count; i++ {
		hdr := buf[i*sectionHdrSize:]
		sections = append(sections, section{
			virtualSize: binary.LittleEndian.Uint32(hdr[8:]),
			virtualAddr: binary.LittleEndian.Uint32(hdr[12:]),
			rawSize:     binary.LittleEndian.Uint32(hdr[16:]),
			rawOffset:   binary.LittleEndian.Uint32(hdr[20:]),
		})
	}
	return sections, nil
}

// rvaToOffset translates a relative virtual address to a file offset.
func rvaToOffset(sections []section, rva uint32) (int64, bool) {
	for _, s := range sections {
		size := s.virtualSize
		if s.rawSize > size {
			size = s.rawSize
		}
		if rva >= s.virtualAddr && rva < s.virtualAddr+size {
			return int64(rva-s.virtualAddr) + int64(s.rawOffset), true
		}
	}
	return 0, false
}

// walkImportTable collects module names from the import descriptor table.
// Descriptors that cannot be mapped back to file offsets terminate the walk
// quietly; packed or partially stripped binaries are common and the caller
// still gets whatever was readable.
func walkImportTable(r io.ReaderAt, sections []section, importRVA uint32, imports map[string]bool) {
	tableOffset, ok := rvaToOffset(sections, importRVA)
	if !ok {
		return
	}
	desc := make([]byte, importDescSize)
	for i := 0; i < maxImportDescs; i++ {
		if _, err := r.ReadAt(desc, tableOffset+int64(i*importDescSize)); err != nil {
			return
		}
		nameRVA := binary.LittleEndian.Uint32(desc[12:])
		if nameRVA == 0 && binary.LittleEndian.Uint32(desc[0:]) == 0 {
			return
		}
		if nameRVA == 0 {
			continue
		}
		nameOffset, ok := rvaToOffset(sections, nameRVA)
		if !ok {
			return
		}
		name, ok := readCString(r, nameOffset)
		if !ok {
			return
		}
		imports[strings.ToLower(name)] = true
	}
}

// readCString reads a NUL-terminated string of at most maxModuleName bytes.
func readCString(r io.ReaderAt, offset int64) (string, bool) {
	buf := make([]byte, maxModuleName)
	n, err := r.ReadAt(buf, offset)
	if n == 0 && err != nil {
		return "", false
	}
	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return string(buf[:i]), true
		}
	}
	return "", false
}
