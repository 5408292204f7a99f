package peinfo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/glaze-tools/glaze/internal/messages"
)

// Sentinel errors for analysis failures; match with errors.Is. I/O problems
// (unreadable file) are returned as-is without a sentinel.
var (
	// ErrMalformedImage marks files that are not valid PE images at all.
	ErrMalformedImage = errors.New("malformed executable image")
	// ErrUnsupportedImage marks valid PE images this tool cannot target:
	// DLLs, non-executable images, and machines other than i386/amd64.
	ErrUnsupportedImage = errors.New("unsupported executable image")
)

// PE header constants.
const (
	dosHeaderSize  = 64
	lfanewOffset   = 0x3c
	coffHeaderSize = 20
	sectionHdrSize = 40
	importDescSize = 20
	importDirIndex = 1
	maxImportDescs = 1024
	maxModuleName  = 256

	machineI386  = 0x014c
	machineAMD64 = 0x8664

	magicPE32     = 0x010b
	magicPE32Plus = 0x020b

	charExecutableImage = 0x0002
	charDLL             = 0x2000
)

// Analyze inspects the executable at path and reports its architecture,
// graphics API, and the override module the injector must assume.
func Analyze(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf(messages.AnalyzeOpenFailedFmt, path, err)
	}
	defer func() { _ = f.Close() }()
	return analyze(f, path)
}

func analyze(r io.ReaderAt, path string) (Profile, error) {
	dos := make([]byte, dosHeaderSize)
	if _, err := r.ReadAt(dos, 0); err != nil {
		return Profile{}, malformed(path, messages.AnalyzeNoStubReason)
	}
	if dos[0] != 'M' || dos[1] != 'Z' {
		return Profile{}, malformed(path, messages.AnalyzeNoStubReason)
	}
	peOffset := int64(binary.LittleEndian.Uint32(dos[lfanewOffset:]))

	sig := make([]byte, 4)
	if _, err := r.ReadAt(sig, peOffset); err != nil {
		return Profile{}, malformed(path, messages.AnalyzeBadOffsetReason)
	}
	if sig[0] != 'P' || sig[1] != 'E' || sig[2] != 0 || sig[3] != 0 {
		return Profile{}, malformed(path, messages.AnalyzeBadSignatureReason)
	}

	coff := make([]byte, coffHeaderSize)
	if _, err := r.ReadAt(coff, peOffset+4); err != nil {
		return Profile{}, malformed(path, truncatedAt("COFF header"))
	}
	machine := binary.LittleEndian.Uint16(coff[0:])
	numSections := int(binary.LittleEndian.Uint16(coff[2:]))
	optHeaderSize := int(binary.LittleEndian.Uint16(coff[16:]))
	characteristics := binary.LittleEndian.Uint16(coff[18:])

	if characteristics&charDLL != 0 {
		return Profile{}, unsupported(path, messages.AnalyzeDLLOnlyReason)
	}
	if characteristics&charExecutableImage == 0 {
		return Profile{}, unsupported(path, messages.AnalyzeNotExecutableReason)
	}

	var arch Arch
	switch machine {
	case machineI386:
		arch = ArchX86
	case machineAMD64:
		arch = ArchX64
	default:
		return Profile{}, unsupported(path, fmt.Sprintf(messages.AnalyzeMachineReasonFmt, machine))
	}

	optOffset := peOffset + 4 + coffHeaderSize
	imports, err := readImports(r, path, optOffset, optHeaderSize, numSections)
	if err != nil {
		return Profile{}, err
	}

	api := classifyAPI(imports)
	return Profile{
		Architecture:   arch,
		API:            api,
		OverrideModule: OverrideFor(api),
	}, nil
}

func malformed(path string, reason string) error {
	return fmt.Errorf(messages.AnalyzeMalformedFmt, ErrMalformedImage, path, reason)
}

func unsupported(path string, reason string) error {
	return fmt.Errorf(messages.AnalyzeUnsupportedFmt, ErrUnsupportedImage, path, reason)
}

func truncatedAt(where string) string {
	return fmt.Sprintf(messages.AnalyzeTruncatedReasonFmt, where)
}
