// Package peinfo inspects Windows PE executables to determine the target
// architecture and the graphics API the binary links against. Only the header
// region and import metadata are read; the image is never loaded or executed.
package peinfo

// Arch identifies the machine word size of an executable.
type Arch string

// Supported architectures.
const (
	ArchX86 Arch = "x86"
	ArchX64 Arch = "x64"
)

// GraphicsAPI identifies the rendering API a binary imports.
type GraphicsAPI string

// Known graphics APIs. APIUnknown is a valid analysis result, not a failure:
// a stripped or delay-loaded import table simply yields no signal.
const (
	APID3D9    GraphicsAPI = "d3d9"
	APID3D10   GraphicsAPI = "d3d10"
	APID3D11   GraphicsAPI = "d3d11"
	APID3D12   GraphicsAPI = "d3d12"
	APIOpenGL  GraphicsAPI = "opengl"
	APIVulkan  GraphicsAPI = "vulkan"
	APIUnknown GraphicsAPI = "unknown"
)

// Profile is the result of analyzing one executable. Profiles are derived
// fresh on every run; game updates can change any field.
type Profile struct {
	Architecture   Arch
	API            GraphicsAPI
	OverrideModule string
}

// apiPriority orders competing graphics imports from most to least specific.
// A binary that statically references several loader stubs (legacy fallback
// paths are common) is classified by the first row that matches. The order is
// deliberately data, not logic: revising it is a one-slice edit.
var apiPriority = []struct {
	api     GraphicsAPI
	modules []string
}{
	{APID3D12, []string{"d3d12.dll"}},
	{APID3D11, []string{"d3d11.dll", "dxgi.dll"}},
	{APID3D10, []string{"d3d10.dll", "d3d10_1.dll"}},
	{APID3D9, []string{"d3d9.dll"}},
	{APIOpenGL, []string{"opengl32.dll"}},
	{APIVulkan, []string{"vulkan-1.dll"}},
}

// overrideModules maps a detected API to the loader module the injector must
// masquerade as. D3D11/12 games resolve their device through dxgi, so the
// proxy name differs from the nominal API for several rows. Vulkan titles
// have no proxy DLL (the injector hooks a layer instead); dxgi is the
// conventional fallback there and for unknown.
var overrideModules = map[GraphicsAPI]string{
	APID3D9:    "d3d9",
	APID3D10:   "d3d10",
	APID3D11:   "dxgi",
	APID3D12:   "dxgi",
	APIOpenGL:  "opengl32",
	APIVulkan:  "dxgi",
	APIUnknown: "dxgi",
}

// classifyAPI picks the highest-priority API among the imported module names.
// imports must be lowercased.
func classifyAPI(imports map[string]bool) GraphicsAPI {
	for _, row := range apiPriority {
		for _, module := range row.modules {
			if imports[module] {
				return row.api
			}
		}
	}
	return APIUnknown
}

// OverrideFor returns the override module name for an API.
func OverrideFor(api GraphicsAPI) string {
	if module, ok := overrideModules[api]; ok {
		return module
	}
	return overrideModules[APIUnknown]
}
