// Package testutil builds filesystem fixtures for tests: minimal PE images
// and Steam library manifests written into temporary directories.
package testutil

import (
	"encoding/binary"
	"os"
	"testing"
)

// Machine types accepted by the analyzer.
const (
	MachineI386  uint16 = 0x014c
	MachineAMD64 uint16 = 0x8664
)

const (
	peSigOffset    = 0x80
	sectionVA      = 0x1000
	sectionFileOff = 0x400
	importDescSize = 20
	charExecutable = 0x0002
	charDLL        = 0x2000
	magicPE32      = 0x010b
	magicPE32Plus  = 0x020b
	numDirs        = 16
)

// PEImage describes the minimal PE file WritePE produces.
type PEImage struct {
	Machine       uint16 // defaults to MachineAMD64
	DLL           bool   // set the DLL characteristic
	NotExecutable bool   // drop the executable-image characteristic
	NoImports     bool   // omit the import directory entirely
	Imports       []string
}

// WritePE writes a minimal but structurally valid PE image to path.
// t is the active test; the image has one section holding the import table.
func WritePE(t *testing.T, path string, img PEImage) {
	t.Helper()
	if img.Machine == 0 {
		img.Machine = MachineAMD64
	}

	pe32plus := img.Machine == MachineAMD64
	optSize := 96 + numDirs*8
	dirOffset := 96
	magic := uint16(magicPE32)
	if pe32plus {
		optSize = 112 + numDirs*8
		dirOffset = 112
		magic = magicPE32Plus
	}

	sectionData := buildImportSection(img)

	fileSize := sectionFileOff + len(sectionData)
	buf := make([]byte, fileSize)

	// DOS stub.
	buf[0] = 'M'
	buf[1] = 'Z'
	binary.LittleEndian.PutUint32(buf[0x3c:], peSigOffset)

	// PE signature.
	copy(buf[peSigOffset:], []byte{'P', 'E', 0, 0})

	// COFF header.
	coff := buf[peSigOffset+4:]
	binary.LittleEndian.PutUint16(coff[0:], img.Machine)
	binary.LittleEndian.PutUint16(coff[2:], 1) // one section
	binary.LittleEndian.PutUint16(coff[16:], uint16(optSize))
	characteristics := uint16(charExecutable)
	if img.NotExecutable {
		characteristics = 0
	}
	if img.DLL {
		characteristics |= charDLL
	}
	binary.LittleEndian.PutUint16(coff[18:], characteristics)

	// Optional header.
	opt := buf[peSigOffset+4+20:]
	binary.LittleEndian.PutUint16(opt[0:], magic)
	binary.LittleEndian.PutUint32(opt[dirOffset-4:], numDirs)
	if !img.NoImports {
		descBytes := (len(img.Imports) + 1) * importDescSize
		binary.LittleEndian.PutUint32(opt[dirOffset+8:], sectionVA)
		binary.LittleEndian.PutUint32(opt[dirOffset+12:], uint32(descBytes))
	}

	// Section header.
	sec := buf[peSigOffset+4+20+optSize:]
	copy(sec[0:], ".idata")
	binary.LittleEndian.PutUint32(sec[8:], uint32(len(sectionData)))
	binary.LittleEndian.PutUint32(sec[12:], sectionVA)
	binary.LittleEndian.PutUint32(sec[16:], uint32(len(sectionData)))
	binary.LittleEndian.PutUint32(sec[20:], sectionFileOff)

	copy(buf[sectionFileOff:], sectionData)

	if err := os.WriteFile(path, buf, 0o755); err != nil {
		t.Fatalf("write PE fixture %s: %v", path, err)
	}
}

// buildImportSection lays out import descriptors followed by module names.
func buildImportSection(img PEImage) []byte {
	descBytes := (len(img.Imports) + 1) * importDescSize
	nameBase := descBytes
	var names []byte
	nameRVAs := make([]uint32, len(img.Imports))
	for i, name := range img.Imports {
		nameRVAs[i] = uint32(sectionVA + nameBase + len(names))
		names = append(names, []byte(name)...)
		names = append(names, 0)
	}

	data := make([]byte, descBytes+len(names))
	for i, rva := range nameRVAs {
		desc := data[i*importDescSize:]
		binary.LittleEndian.PutUint32(desc[0:], sectionVA) // OriginalFirstThunk, any nonzero
		binary.LittleEndian.PutUint32(desc[12:], rva)
		binary.LittleEndian.PutUint32(desc[16:], sectionVA) // FirstThunk
	}
	copy(data[nameBase:], names)
	return data
}
