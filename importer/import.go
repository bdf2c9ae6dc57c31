package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/SparkyTD/jlcrs/kicad"
	"github.com/SparkyTD/jlcrs/sexp"
	"github.com/SparkyTD/jlcrs/translate"
)

const (
	productSearchURL = "https://pro.easyeda.com/api/eda/product/search?keyword=%s&currPage=1&pageSize=1"
	componentDataURL = "https://pro.easyeda.com/api/v2/components/%s"
	stepModelURL     = "https://modules.easyeda.com/qAxj6KHrDKw4blvCG8QJPs7Y/%s"
)

// DefaultLibraryName is used when Options.Name is empty.
const DefaultLibraryName = "JLCPCB"

// Options mirrors the CLI surface of spec.md §6: one command with four
// flags plus the positional LCSC code.
type Options struct {
	Code        string
	Update      bool
	Name        string
	Description string
	Root        string

	// ProjectRoot is the directory sym-lib-table/fp-lib-table live in.
	// Not a CLI flag itself; cmd/jlcrs supplies the working directory.
	ProjectRoot string
}

// Deps bundles Import's collaborators, per spec.md §6.
type Deps struct {
	FS      Filesystem
	Fetcher HttpFetcher
	Step    StepBoundingBox
}

// normalizeLCSCCode validates the `C<digits>` shape spec.md's GLOSSARY
// requires and returns its canonical form.
func normalizeLCSCCode(code string) (string, error) {
	if !strings.HasPrefix(code, "C") {
		return "", fmt.Errorf("invalid LCSC code %q: must start with C", code)
	}
	n, err := strconv.ParseUint(code[1:], 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid LCSC code %q: %w", code, err)
	}
	return fmt.Sprintf("C%d", n), nil
}

// Import fetches the component identified by opts.Code, translates its
// symbol and footprint, and merges the result into the project's library
// (sym-lib-table/fp-lib-table and the .kicad_sym/.pretty files they
// reference), per spec.md §6.
func Import(ctx context.Context, deps Deps, opts Options) error {
	lcscCode, err := normalizeLCSCCode(opts.Code)
	if err != nil {
		return err
	}

	libraryName := DefaultLibraryName
	if opts.Name != "" {
		libraryName = opts.Name
	}
	libraryName = sanitizeFilename(libraryName)

	libraryRoot := opts.ProjectRoot
	if opts.Root != "" {
		libraryRoot = filepath.Join(opts.ProjectRoot, opts.Root)
		if err := deps.FS.Mkdirs(libraryRoot); err != nil {
			return fmt.Errorf("creating library root %s: %w", libraryRoot, err)
		}
	}
	libraryPathRelative := "${KIPRJMOD}"
	if rel, err := filepath.Rel(opts.ProjectRoot, libraryRoot); err == nil && rel != "." {
		libraryPathRelative = "${KIPRJMOD}/" + filepath.ToSlash(rel)
	}

	product, err := fetchProduct(ctx, deps.Fetcher, opts.Code)
	if err != nil {
		return err
	}

	deviceName := product.MPN
	safePartName := sanitizeFilename(deviceName)

	symDoc, err := easyeda.DecodeSymbol(strings.NewReader(product.DeviceInfo.SymbolInfo.DataStr))
	if err != nil {
		return fmt.Errorf("decoding symbol payload for %s: %w", deviceName, err)
	}
	fpDoc, err := easyeda.DecodeFootprint(strings.NewReader(product.DeviceInfo.FootprintInfo.DataStr))
	if err != nil {
		return fmt.Errorf("decoding footprint payload for %s: %w", deviceName, err)
	}

	kicadSymbol, err := translate.TranslateSymbol(symDoc)
	if err != nil {
		return fmt.Errorf("translating symbol for %s: %w", deviceName, err)
	}
	kicadFootprint, err := translate.TranslateFootprint(fpDoc, deviceName)
	if err != nil {
		return fmt.Errorf("translating footprint for %s: %w", deviceName, err)
	}

	kicadSymbol.ID = deviceName
	designator := symbolDesignator(symDoc)

	addHiddenSymbolProperty(&kicadSymbol, "Part Number", deviceName)
	addHiddenSymbolProperty(&kicadSymbol, "LCSC", lcscCode)
	addHiddenSymbolProperty(&kicadSymbol, "Footprint", libraryName+":"+deviceName)
	addHiddenFootprintProperty(&kicadFootprint, "LCSC", lcscCode)

	if datasheet, ok := product.DeviceInfo.Attributes["Datasheet"]; ok && datasheet != "" {
		addHiddenSymbolProperty(&kicadSymbol, "Datasheet", datasheet)
		addHiddenFootprintProperty(&kicadFootprint, "Datasheet", datasheet)
	}
	description := product.DeviceInfo.Attributes["Description"]
	if description == "" {
		description = product.DeviceInfo.Description
	}
	if description != "" {
		addHiddenSymbolProperty(&kicadSymbol, "Description", description)
		addHiddenFootprintProperty(&kicadFootprint, "Description", description)
		kicadFootprint.Descr = description
	}
	if partClass, ok := product.DeviceInfo.Attributes["JLCPCB Part Class"]; ok && partClass != "" {
		addHiddenSymbolProperty(&kicadSymbol, "JLCPCB Part Class", partClass)
		addHiddenFootprintProperty(&kicadFootprint, "JLCPCB Part Class", partClass)
	}
	if value, ok := product.DeviceInfo.Attributes["Value"]; ok && value != "" {
		addVisibleSymbolProperty(&kicadSymbol, "Value", value)
	} else {
		addVisibleSymbolProperty(&kicadSymbol, "Value", deviceName)
	}
	addVisibleSymbolProperty(&kicadSymbol, "Reference", designator)

	symbolLibPath := filepath.Join(libraryRoot, libraryName+".kicad_sym")
	symbolLib, err := loadOrCreateSymbolLib(deps.FS, symbolLibPath)
	if err != nil {
		return err
	}
	replaced := false
	for i := range symbolLib.Symbols {
		if symbolLib.Symbols[i].ID == kicadSymbol.ID {
			if !opts.Update {
				return fmt.Errorf("component %s has already been imported; use --update to overwrite it", deviceName)
			}
			symbolLib.Symbols[i] = kicadSymbol
			replaced = true
			break
		}
	}
	if !replaced {
		symbolLib.Symbols = append(symbolLib.Symbols, kicadSymbol)
	}

	if model3d := product.DeviceInfo.FootprintInfo.Model3D; model3d != nil {
		if modelPath, ok := fetchStepModel(ctx, deps, model3d.URI, libraryRoot, libraryName, safePartName); ok {
			kicadFootprint.Model = &kicad.FootprintModel{Path: modelPath, ScaleX: 1, ScaleY: 1, ScaleZ: 1}
		}
	}

	if err := writeSexpFile(deps.FS, symbolLibPath, symbolLib.Serialize()); err != nil {
		return fmt.Errorf("writing %s: %w", symbolLibPath, err)
	}

	footprintLibRoot := filepath.Join(libraryRoot, libraryName+".pretty")
	if err := deps.FS.Mkdirs(footprintLibRoot); err != nil {
		return fmt.Errorf("creating %s: %w", footprintLibRoot, err)
	}
	footprintPath := filepath.Join(footprintLibRoot, safePartName+".kicad_mod")
	if err := writeSexpFile(deps.FS, footprintPath, kicadFootprint.Serialize()); err != nil {
		return fmt.Errorf("writing %s: %w", footprintPath, err)
	}

	if err := upsertLibTable(deps.FS, filepath.Join(opts.ProjectRoot, "sym-lib-table"), "sym_lib_table",
		kicad.LibTableEntry{
			Name:        libraryName,
			Kind:        "KiCad",
			URI:         libraryPathRelative + "/" + libraryName + ".kicad_sym",
			Description: opts.Description,
		}); err != nil {
		return err
	}
	if err := upsertLibTable(deps.FS, filepath.Join(opts.ProjectRoot, "fp-lib-table"), "fp_lib_table",
		kicad.LibTableEntry{
			Name:        libraryName,
			Kind:        "KiCad",
			URI:         libraryPathRelative + "/" + libraryName + ".pretty",
			Description: opts.Description,
		}); err != nil {
		return err
	}

	return nil
}

func fetchProduct(ctx context.Context, fetcher HttpFetcher, code string) (*productInfo, error) {
	url := fmt.Sprintf(productSearchURL, code)
	body, err := fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("searching for product %s: %w", code, err)
	}
	var resp productSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding product search response: %w", err)
	}
	for i := range resp.Result.ProductList {
		if resp.Result.ProductList[i].Number == code {
			return &resp.Result.ProductList[i], nil
		}
	}
	return nil, fmt.Errorf("product code not found: %s", code)
}

// fetchStepModel downloads and writes a STEP model best-effort, matching
// the original's "swallow the error, proceed without a model" behavior
// for any step of this chain that fails.
func fetchStepModel(ctx context.Context, deps Deps, modelID, libraryRoot, libraryName, safePartName string) (string, bool) {
	body, err := deps.Fetcher.Get(ctx, fmt.Sprintf(componentDataURL, modelID))
	if err != nil {
		return "", false
	}
	var resp componentDataResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Result == nil {
		return "", false
	}
	stepBytes, err := deps.Fetcher.Get(ctx, fmt.Sprintf(stepModelURL, resp.Result.N3DModelUUID))
	if err != nil {
		return "", false
	}
	modelPath := modelPathFor(libraryRoot, libraryName, safePartName)
	if err := deps.FS.Mkdirs(filepath.Dir(modelPath)); err != nil {
		return "", false
	}
	if err := deps.FS.Write(modelPath, stepBytes); err != nil {
		return "", false
	}
	return modelPath, true
}

func loadOrCreateSymbolLib(fs Filesystem, path string) (kicad.SymbolLib, error) {
	if !fs.Exists(path) {
		return kicad.SymbolLib{Version: 20211014, Generator: "jlcrs"}, nil
	}
	node, err := readSexpFile(fs, path)
	if err != nil {
		return kicad.SymbolLib{}, fmt.Errorf("reading %s: %w", path, err)
	}
	lib, err := kicad.DeserializeSymbolLib(node)
	if err != nil {
		return kicad.SymbolLib{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lib, nil
}

func upsertLibTable(fs Filesystem, path, kind string, entry kicad.LibTableEntry) error {
	var table kicad.LibTable
	if fs.Exists(path) {
		node, err := readSexpFile(fs, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		table, err = kicad.DeserializeLibTable(node)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		table = kicad.LibTable{Kind: kind}
	}
	if table.HasLibrary(entry.Name) {
		return nil
	}
	table = table.WithLibrary(entry)
	if err := writeSexpFile(fs, path, table.Serialize()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func readSexpFile(fs Filesystem, path string) (*sexp.Node, error) {
	data, err := fs.Read(path)
	if err != nil {
		return nil, err
	}
	return sexp.Parse(strings.NewReader(string(data)))
}

func writeSexpFile(fs Filesystem, path string, node *sexp.Node) error {
	text := sexp.Print(node.Tokens(), kicad.SameLineSetFor(node.Name))
	return fs.Write(path, []byte(text))
}
